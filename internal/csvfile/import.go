package csvfile

import (
	"errors"
	"strings"
)

var ErrMissingColumns = errors.New(`CSV must contain "name" and "email" columns`)

// ContactRow is one imported roster line.
type ContactRow struct {
	Name  string
	Email string
	Phone string
}

// ParseContacts reads a pasted roster. The header locates the name, email
// and (optional) phone columns by case-insensitive substring. Rows are split
// on plain commas; quoted fields are not understood. Rows without a name or
// email, or too short to reach those columns, are skipped.
func ParseContacts(text string) ([]ContactRow, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	if text == "" {
		return nil, ErrMissingColumns
	}
	lines := strings.Split(text, "\n")

	header := strings.Split(lines[0], ",")
	nameIdx := columnIndex(header, "name")
	emailIdx := columnIndex(header, "email")
	phoneIdx := columnIndex(header, "phone")
	if nameIdx == -1 || emailIdx == -1 {
		return nil, ErrMissingColumns
	}

	rows := []ContactRow{}
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		if nameIdx >= len(values) || emailIdx >= len(values) {
			continue
		}

		row := ContactRow{
			Name:  strings.TrimSpace(values[nameIdx]),
			Email: strings.TrimSpace(values[emailIdx]),
		}
		if phoneIdx != -1 && phoneIdx < len(values) {
			row.Phone = strings.TrimSpace(values[phoneIdx])
		}
		if row.Name == "" || row.Email == "" {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func columnIndex(header []string, name string) int {
	for i, column := range header {
		if strings.Contains(strings.ToLower(column), name) {
			return i
		}
	}
	return -1
}
