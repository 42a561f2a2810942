// Package zoomcsv reads the participant CSV a Zoom meeting exports. Column
// names differ between the German and English UI, so every field is resolved
// through a list of known header variants.
package zoomcsv

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

type Row struct {
	Name        string
	Email       string
	JoinTime    string
	LeaveTime   string
	DurationMin *int
}

var (
	nameHeaders     = []string{"Name (ursprünglicher Name)", "Name (Original Name)", "User Name", "Name"}
	emailHeaders    = []string{"E-Mail", "E-mail", "Email"}
	joinHeaders     = []string{"Beitrittszeit", "Join Time"}
	leaveHeaders    = []string{"Austrittszeit", "Leave Time"}
	durationHeaders = []string{"Dauer (Minuten)", "Duration (Minutes)"}
)

// Parse reads the full export. Rows without a usable name are dropped; they
// cannot be matched to anyone.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	stripBOM(header)

	idx := func(variants []string) int {
		for _, v := range variants {
			for i, h := range header {
				if strings.EqualFold(strings.TrimSpace(h), v) {
					return i
				}
			}
		}
		return -1
	}

	nameIdx := idx(nameHeaders)
	emailIdx := idx(emailHeaders)
	joinIdx := idx(joinHeaders)
	leaveIdx := idx(leaveHeaders)
	durationIdx := idx(durationHeaders)

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		name := field(record, nameIdx)
		if name == "" {
			continue
		}

		row := Row{
			Name:      name,
			Email:     field(record, emailIdx),
			JoinTime:  field(record, joinIdx),
			LeaveTime: field(record, leaveIdx),
		}
		if raw := field(record, durationIdx); raw != "" {
			if min, err := strconv.Atoi(raw); err == nil {
				row.DurationMin = &min
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func stripBOM(header []string) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
}
