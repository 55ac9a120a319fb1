package recommender

import (
	"fmt"
	"strings"

	"stunting/domain"
	"stunting/services/stunting/analytics"
)

func yesNo(b bool) string {
	if b {
		return "Ya"
	}
	return "Tidak"
}

func individualPrompt(child *domain.ChildRecord) string {
	var sb strings.Builder
	sb.WriteString("Anda adalah ahli gizi anak di Indonesia. Berdasarkan data pemeriksaan anak berikut, berikan rekomendasi gizi dan pengasuhan.\n\n")
	fmt.Fprintf(&sb, "Umur: %d bulan\n", child.Age)
	if child.Gender != "" {
		fmt.Fprintf(&sb, "Jenis kelamin: %s\n", child.Gender)
	}
	fmt.Fprintf(&sb, "Berat lahir: %.2f kg\n", child.BirthWeight)
	fmt.Fprintf(&sb, "Panjang lahir: %.2f cm\n", child.BirthLength)
	fmt.Fprintf(&sb, "Berat badan saat ini: %.2f kg\n", child.BodyWeight)
	fmt.Fprintf(&sb, "Tinggi/panjang badan saat ini: %.2f cm\n", child.BodyLength)
	fmt.Fprintf(&sb, "ASI eksklusif: %s\n", yesNo(child.Breastfeeding))
	fmt.Fprintf(&sb, "Status stunting (pengukuran): %s\n", yesNo(child.IsStunting))
	fmt.Fprintf(&sb, "Status stunting (analisis gambar): %s\n", yesNo(child.StuntingImage))
	if child.Alamat != nil {
		fmt.Fprintf(&sb, "Lokasi: %s, %s, %s\n", child.Alamat.CityDistrict, child.Alamat.City, child.Alamat.Province)
	}
	sb.WriteString(`
Jawab HANYA dengan objek JSON dengan format:
{
  "healthStatus": "ringkasan status kesehatan anak",
  "recommendations": ["rekomendasi 1", "rekomendasi 2"],
  "mealPlan": ["menu 1", "menu 2"],
  "parentGuidance": ["panduan 1", "panduan 2"],
  "followUp": "jadwal tindak lanjut"
}`)
	return sb.String()
}

func policyPrompt(stats *domain.RegionStats) string {
	var sb strings.Builder
	sb.WriteString("Anda adalah konsultan kebijakan kesehatan masyarakat di Indonesia. Berdasarkan statistik stunting berikut, susun rekomendasi kebijakan.\n\n")
	fmt.Fprintf(&sb, "Tingkat wilayah: %s\n", stats.Location.Level)
	fmt.Fprintf(&sb, "Wilayah: %s\n", stats.Location.Name())
	fmt.Fprintf(&sb, "Jumlah anak: %d\n", stats.TotalChildren)
	fmt.Fprintf(&sb, "Jumlah stunting: %d\n", stats.TotalStunting)
	fmt.Fprintf(&sb, "Prevalensi stunting: %s%%\n", stats.StuntingRate)

	if len(stats.Groups) > 0 {
		sb.WriteString("Rincian per wilayah:\n")
		for _, g := range analytics.SortedGroups(stats.Groups) {
			fmt.Fprintf(&sb, "- %s: %d anak, %d stunting (%s%%)\n", g.Name, g.TotalChildren, g.TotalStunting, g.StuntingRate)
		}
	}

	sb.WriteString(`
Jawab HANYA dengan objek JSON dengan format:
{
  "recommendations": ["rekomendasi 1", "rekomendasi 2"],
  "priority": "high | medium | low",
  "summary": "ringkasan kondisi",
  "actionPlan": {
    "shortTerm": ["langkah jangka pendek"],
    "mediumTerm": ["langkah jangka menengah"],
    "longTerm": ["langkah jangka panjang"]
  },
  "stakeholders": ["pemangku kepentingan"],
  "budgetEstimate": "perkiraan anggaran"
}`)
	return sb.String()
}
