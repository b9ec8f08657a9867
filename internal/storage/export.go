// ABOUTME: Export functionality for dashboard data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/bbg/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export header.
const ExportVersion = "1.0"

// ExportData is the export file layout. The collections sit at the top level
// so an export can be fed back as a seed file.
type ExportData struct {
	Version            string    `json:"version,omitempty" yaml:"version,omitempty"`
	ExportedAt         time.Time `json:"exported_at,omitempty" yaml:"exported_at,omitempty"`
	Tool               string    `json:"tool,omitempty" yaml:"tool,omitempty"`
	models.Collections `yaml:",inline"`
}

// NewExport wraps collections with an export header.
func NewExport(c *models.Collections, now time.Time) *ExportData {
	return &ExportData{
		Version:     ExportVersion,
		ExportedAt:  now,
		Tool:        "bbg",
		Collections: *c,
	}
}

// ExportJSON exports data as indented JSON.
func ExportJSON(data *ExportData) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return append(out, '\n'), nil
}

// ExportYAML exports data as YAML.
func ExportYAML(data *ExportData) ([]byte, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return out, nil
}

// ExportMarkdown renders each collection as a Markdown table. Payment status
// is derived from the end date as of now.
func ExportMarkdown(data *ExportData, now time.Time) string {
	var sb strings.Builder
	c := data.Collections

	sb.WriteString(fmt.Sprintf("# BBG Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(c.Captains) > 0 {
		sb.WriteString("## Captains\n\n")
		sb.WriteString("| ID | Name | Specialization | Experience |\n")
		sb.WriteString("|----|------|----------------|------------|\n")
		for _, x := range c.Captains {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", x.ID, cell(x.Name), cell(x.Specialization), cell(x.Experience)))
		}
		sb.WriteString("\n")
	}

	if len(c.Members) > 0 {
		sb.WriteString("## Members\n\n")
		sb.WriteString("| ID | Name | Email | Joined | Captain |\n")
		sb.WriteString("|----|------|-------|--------|---------|\n")
		for _, x := range c.Members {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n", x.ID, cell(x.Name), cell(x.Email), x.JoinDate, x.CaptainID))
		}
		sb.WriteString("\n")
	}

	if len(c.Equipment) > 0 {
		sb.WriteString("## Equipment\n\n")
		sb.WriteString("| ID | Name | Type | Condition | Quantity |\n")
		sb.WriteString("|----|------|------|-----------|----------|\n")
		for _, x := range c.Equipment {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d |\n", x.ID, cell(x.Name), cell(x.Type), x.Condition, x.Quantity))
		}
		sb.WriteString("\n")
	}

	if len(c.Workouts) > 0 {
		sb.WriteString("## Workouts\n\n")
		sb.WriteString("| ID | Date | Member | Equipment | Sets x Reps | Weight | Duration |\n")
		sb.WriteString("|----|------|--------|-----------|-------------|--------|----------|\n")
		for _, x := range c.Workouts {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %dx%d | %.1f kg | %d min |\n",
				x.ID, x.Date, x.MemberID, x.EquipmentID, x.Sets, x.Reps, x.Weight, x.Duration))
		}
		sb.WriteString("\n")
	}

	if len(c.Payments) > 0 {
		sb.WriteString("## Payments\n\n")
		sb.WriteString("| ID | Member | Plan | Amount | Start | End | Status |\n")
		sb.WriteString("|----|--------|------|--------|-------|-----|--------|\n")
		for _, x := range c.Payments {
			state := models.DeriveStatus(x.EndDate, now)
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.2f | %s | %s | %s |\n",
				x.ID, x.MemberID, x.PlanType, x.Amount, x.StartDate, x.EndDate, state.Status))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// cell escapes pipes so free text cannot break a table row.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
