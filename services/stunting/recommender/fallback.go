package recommender

import (
	"fmt"
	"strconv"

	"stunting/domain"
)

func fallbackIndividual(child *domain.ChildRecord) domain.IndividualRecommendation {
	if child.IsStunting || child.StuntingImage {
		return domain.IndividualRecommendation{
			HealthStatus: "Anak terindikasi stunting dan memerlukan penanganan prioritas tinggi",
			Recommendations: []string{
				"Rujuk anak ke puskesmas untuk pemeriksaan dan konseling gizi",
				"Pantau berat dan tinggi badan setiap bulan di posyandu",
				"Berikan makanan tambahan kaya protein hewani setiap hari",
			},
			MealPlan: []string{
				"Sarapan: bubur nasi dengan telur dan sayur bayam",
				"Makan siang: nasi, ikan, tahu, dan sayur wortel",
				"Selingan: buah pisang atau pepaya",
				"Makan malam: nasi, hati ayam, dan sayur labu",
			},
			ParentGuidance: []string{
				"Terapkan pola makan teratur tiga kali sehari dengan dua kali selingan",
				"Jaga kebersihan makanan, air minum, dan cuci tangan dengan sabun",
				"Lengkapi imunisasi dasar sesuai jadwal",
			},
			FollowUp: "Kontrol ulang ke puskesmas dalam 2 minggu",
		}
	}

	rec := domain.IndividualRecommendation{
		HealthStatus: "Pertumbuhan anak dalam batas normal",
		Recommendations: []string{
			"Lanjutkan pemantauan pertumbuhan rutin di posyandu",
			"Pertahankan asupan gizi seimbang sesuai usia",
		},
		MealPlan: []string{
			"Sarapan: nasi, telur, dan sayur",
			"Makan siang: nasi, lauk hewani, dan buah",
			"Makan malam: nasi, lauk nabati, dan sayur",
		},
		ParentGuidance: []string{
			"Berikan stimulasi tumbuh kembang sesuai usia",
			"Jaga kebersihan lingkungan dan sanitasi rumah",
		},
		FollowUp: "Pemeriksaan rutin bulanan di posyandu",
	}
	if !child.Breastfeeding && child.Age <= 24 {
		rec.Recommendations = append(rec.Recommendations, "Konsultasikan pemberian ASI dan MP-ASI dengan tenaga kesehatan")
	}
	return rec
}

// PriorityForRate maps a stunting prevalence percentage to a priority.
func PriorityForRate(rate string) string {
	r, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return domain.PriorityLow
	}
	switch {
	case r > 30:
		return domain.PriorityHigh
	case r >= 20:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func fallbackPolicy(stats *domain.RegionStats) domain.PolicyRecommendation {
	priority := PriorityForRate(stats.StuntingRate)
	name := stats.Location.Name()

	rec := domain.PolicyRecommendation{
		Priority: priority,
		Summary: fmt.Sprintf("Prevalensi stunting di %s sebesar %s%% dari %d anak yang diperiksa (%d kasus).",
			name, stats.StuntingRate, stats.TotalChildren, stats.TotalStunting),
		Stakeholders: []string{
			"Dinas Kesehatan",
			"Puskesmas",
			"Posyandu dan kader kesehatan",
			"Pemerintah desa",
		},
	}

	switch priority {
	case domain.PriorityHigh:
		rec.Recommendations = []string{
			"Tetapkan penanganan stunting sebagai program prioritas daerah",
			"Perluas pemberian makanan tambahan untuk balita dan ibu hamil",
			"Tingkatkan frekuensi pemantauan pertumbuhan di posyandu",
			"Perkuat akses air bersih dan sanitasi",
		}
		rec.ActionPlan = domain.ActionPlan{
			ShortTerm:  []string{"Skrining ulang seluruh balita dalam 1 bulan", "Distribusi makanan tambahan untuk kasus stunting"},
			MediumTerm: []string{"Pelatihan kader posyandu tentang gizi", "Kelas ibu balita di setiap desa"},
			LongTerm:   []string{"Integrasi program stunting ke perencanaan anggaran daerah", "Perbaikan infrastruktur sanitasi"},
		}
		rec.BudgetEstimate = "Tinggi: alokasi khusus dari APBD dan dana desa"
	case domain.PriorityMedium:
		rec.Recommendations = []string{
			"Perkuat edukasi gizi bagi keluarga dengan balita",
			"Pantau wilayah dengan prevalensi tertinggi secara berkala",
			"Optimalkan pemberian ASI eksklusif",
		}
		rec.ActionPlan = domain.ActionPlan{
			ShortTerm:  []string{"Identifikasi wilayah dengan kasus terbanyak"},
			MediumTerm: []string{"Program edukasi gizi berbasis posyandu"},
			LongTerm:   []string{"Evaluasi tahunan program penurunan stunting"},
		}
		rec.BudgetEstimate = "Sedang: optimalisasi anggaran kesehatan yang ada"
	default:
		rec.Recommendations = []string{
			"Pertahankan program pemantauan pertumbuhan rutin",
			"Lanjutkan edukasi gizi seimbang",
		}
		rec.ActionPlan = domain.ActionPlan{
			ShortTerm:  []string{"Lanjutkan penimbangan rutin bulanan"},
			MediumTerm: []string{"Pertahankan cakupan imunisasi dan ASI eksklusif"},
			LongTerm:   []string{"Jaga tren prevalensi tetap rendah"},
		}
		rec.BudgetEstimate = "Rendah: anggaran rutin program kesehatan"
	}
	return rec
}
