package usecase

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"go-marketplace-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

// sheet is a header row plus data rows written to a single worksheet
type sheet struct {
	name    string
	headers []string
	rows    [][]interface{}
}

func (s sheet) xlsx() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", s.name); err != nil {
		return nil, err
	}

	for i, h := range s.headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(s.name, cell, h)
	}

	// Dark blue header with white text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(s.headers), 1)
	f.SetCellStyle(s.name, "A1", endCell, headerStyle)

	for rowIdx, row := range s.rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(s.name, cell, value)
		}
	}

	endCol, _ := excelize.ColumnNumberToName(len(s.headers))
	f.SetColWidth(s.name, "A", endCol, 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func usersSheet(users []domain.AdminUser) sheet {
	s := sheet{
		name:    "Users",
		headers: []string{"ID", "EMAIL", "FULL NAME", "PHONE", "ROLE", "STATUS", "2FA", "CREATED AT"},
	}
	for _, u := range users {
		status := "active"
		if u.IsDisabled {
			status = "disabled"
		}
		phone := ""
		if u.Phone != nil {
			phone = *u.Phone
		}
		s.rows = append(s.rows, []interface{}{
			u.ID, u.Email, u.FullName, phone, u.Role, status, u.TOTPEnabled, formatTime(&u.CreatedAt),
		})
	}
	return s
}

func fraudSheet(alerts []domain.FraudAlert) sheet {
	s := sheet{
		name:    "Fraud Alerts",
		headers: []string{"ID", "TYPE", "SEVERITY", "STATUS", "SUBJECT USER", "DESCRIPTION", "EVIDENCE IDS", "RESOLVED BY", "RESOLUTION NOTE", "RESOLVED AT", "CREATED AT"},
	}
	for _, a := range alerts {
		resolvedBy, note := "", ""
		if a.ResolvedBy != nil {
			resolvedBy = *a.ResolvedBy
		}
		if a.ResolutionNote != nil {
			note = *a.ResolutionNote
		}
		s.rows = append(s.rows, []interface{}{
			a.ID, a.AlertType, strings.ToUpper(a.Severity), a.Status, a.SubjectUserID, a.Description,
			strings.Join(a.EvidenceIDs, ", "), resolvedBy, note, formatTime(a.ResolvedAt), formatTime(&a.CreatedAt),
		})
	}
	return s
}
