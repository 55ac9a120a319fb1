package delivery

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stunting/config"
	"stunting/domain"
)

// importColumns is the header of the bulk upload CSV, in order.
var importColumns = []string{
	"nik", "name", "gender", "age",
	"birth_weight", "birth_length", "body_weight", "body_length",
	"breastfeeding", "is_stunting", "stunting_image",
	"alamat_id", "latitude", "longitude", "province", "city", "city_district", "village",
}

// DownloadImportTemplate serves an empty CSV with the expected header.
func (h *childHandler) DownloadImportTemplate(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="children_template.csv"`)
	c.Set(fiber.HeaderContentType, "text/csv")

	config.PrintLogInfo(username, fiber.StatusOK, "DownloadImportTemplate")
	return c.Status(fiber.StatusOK).SendString(strings.Join(importColumns, ",") + "\n")
}

func (h *childHandler) ImportChildren(c *fiber.Ctx) error {
	_, username := claimsOf(c)

	file, err := c.FormFile("file")
	if err != nil {
		config.PrintLogInfo(username, fiber.StatusBadRequest, "ImportChildren")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to parse file",
		})
	}

	f, err := file.Open()
	if err != nil {
		return failure(c, username, "ImportChildren", "Failed to read file", err)
	}
	defer f.Close()

	rows, badRows, err := parseChildCSV(f)
	if err != nil {
		return failure(c, username, "ImportChildren", "Import Failure, unreadable file.", err)
	}
	if len(badRows) > 0 {
		config.PrintLogInfo(username, fiber.StatusBadRequest, "ImportChildren")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Import Failure, bad input found.",
			"error":   badRows,
		})
	}

	imported, err := h.uc.ImportChildren(c.Context(), rows)
	if err != nil {
		var importErr *domain.ImportError
		if errors.As(err, &importErr) {
			config.PrintLogInfo(username, fiber.StatusBadRequest, "ImportChildren")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Import Failure, bad input found.",
				"error":   importErr.Rows,
			})
		}
		return failure(c, username, "ImportChildren", "Import Failure", err)
	}

	return ok(c, username, fiber.StatusCreated, "ImportChildren",
		fmt.Sprintf("%d child records imported successfully", imported), fiber.Map{"imported": imported})
}

// parseChildCSV reads the upload into payloads. Rows whose cells cannot be
// parsed are reported by line number; the returned error is only set when the
// file itself is not valid CSV.
func parseChildCSV(r io.Reader) ([]domain.ChildUpload, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, domain.NewValidationError("file", fmt.Sprintf("failed to read CSV file: %v", err))
	}
	if len(records) == 0 {
		return nil, nil, domain.NewValidationError("file", "file is empty")
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, required := range []string{"age", "birth_weight", "birth_length", "body_weight", "body_length"} {
		if _, found := index[required]; !found {
			return nil, nil, domain.NewValidationError("file", fmt.Sprintf("missing column %s", required))
		}
	}

	var rows []domain.ChildUpload
	var errList []string
	for i, record := range records[1:] {
		line := i + 2
		cell := func(name string) string {
			col, found := index[name]
			if !found || col >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[col])
		}
		if isBlank(record) {
			continue
		}

		p, rowErrs := payloadFromCells(cell)
		for _, e := range rowErrs {
			errList = append(errList, fmt.Sprintf("row %d: %s", line, e))
		}
		if len(rowErrs) == 0 {
			rows = append(rows, domain.ChildUpload{Row: line, Payload: p})
		}
	}
	return rows, errList, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func payloadFromCells(cell func(string) string) (domain.ChildPayload, []string) {
	var errList []string
	p := domain.ChildPayload{
		Name:   cell("name"),
		Gender: strings.ToLower(cell("gender")),
	}
	if nik := cell("nik"); nik != "" {
		p.NIK = &nik
	}

	if v := cell("age"); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			errList = append(errList, fmt.Sprintf("age %q is not a whole number", v))
		} else {
			p.Age = &age
		}
	}

	floats := []struct {
		name string
		dst  **float64
	}{
		{"birth_weight", &p.BirthWeight},
		{"birth_length", &p.BirthLength},
		{"body_weight", &p.BodyWeight},
		{"body_length", &p.BodyLength},
		{"latitude", &p.Latitude},
		{"longitude", &p.Longitude},
	}
	for _, f := range floats {
		v := cell(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
		if err != nil {
			errList = append(errList, fmt.Sprintf("%s %q is not a number", f.name, v))
			continue
		}
		*f.dst = &n
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"breastfeeding", &p.Breastfeeding},
		{"is_stunting", &p.IsStunting},
		{"stunting_image", &p.StuntingImage},
	}
	for _, b := range bools {
		v := cell(b.name)
		if v == "" {
			continue
		}
		parsed, err := parseFlag(v)
		if err != nil {
			errList = append(errList, fmt.Sprintf("%s %q is not a yes/no value", b.name, v))
			continue
		}
		*b.dst = parsed
	}

	if v := cell("alamat_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errList = append(errList, fmt.Sprintf("alamat_id %q is not a valid UUID", v))
		} else {
			p.AlamatID = &id
		}
	}

	if cell("province") != "" || cell("city") != "" || cell("city_district") != "" {
		p.Alamat = &domain.AddressPayload{
			Province:     cell("province"),
			City:         cell("city"),
			CityDistrict: cell("city_district"),
			Village:      cell("village"),
		}
	}
	return p, errList
}

func parseFlag(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "ya", "y", "yes":
		return true, nil
	case "tidak", "n", "no":
		return false, nil
	}
	return strconv.ParseBool(v)
}
