package report

import (
	"fmt"
	"strings"
	"time"

	"patient-register/internal/domain/entity"
)

const (
	ruleLine      = "======================================="
	separatorLine = "---------------------------------------"
	dateLayout    = "2006-01-02"
	rowFormat     = "| ID: %-5d Name: %-15s | Age: %-3d Room: %-5d Diagnosis: %-20s | %s: %-10s |"
)

type layout struct {
	title      string
	countLabel string
	emptyRow   string
	dateLabel  string
}

var (
	admissionLayout = layout{
		title:      "Patient Admission Report",
		countLabel: "Total patients admitted",
		emptyRow:   "| No patients admitted in this timeframe |",
		dateLabel:  "Admitted",
	}
	dischargeLayout = layout{
		title:      "Discharged Patient Report",
		countLabel: "Total patients discharged",
		emptyRow:   "| No patients discharged in this timeframe |",
		dateLabel:  "Discharged",
	}
)

// RenderAdmissionReport renders the admitted patients that matched tf.
func RenderAdmissionReport(matches []entity.PatientRecord, tf entity.Timeframe, now time.Time) string {
	rows := make([]string, len(matches))
	for i, p := range matches {
		rows[i] = formatRow(p, admissionLayout.dateLabel, p.AdmittedAt.In(now.Location()))
	}
	return render(admissionLayout, rows, tf, now)
}

// RenderDischargeReport renders the discharged patients that matched tf.
func RenderDischargeReport(matches []entity.DischargeRecord, tf entity.Timeframe, now time.Time) string {
	rows := make([]string, len(matches))
	for i, d := range matches {
		rows[i] = formatRow(d.Patient, dischargeLayout.dateLabel, d.DischargedAt.In(now.Location()))
	}
	return render(dischargeLayout, rows, tf, now)
}

func formatRow(p entity.PatientRecord, dateLabel string, at time.Time) string {
	return fmt.Sprintf(rowFormat, p.ID, p.Name, p.AgeInYears, p.RoomNumber, p.Diagnosis, dateLabel, at.Format(dateLayout))
}

func render(l layout, rows []string, tf entity.Timeframe, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "   %s - %s - %s\n", l.title, tf, now.Format(dateLayout))
	b.WriteString(ruleLine + "\n")
	fmt.Fprintf(&b, "%s: %d\n", l.countLabel, len(rows))
	b.WriteString(separatorLine + "\n")

	if len(rows) == 0 {
		b.WriteString(l.emptyRow + "\n")
		b.WriteString(separatorLine + "\n")
		return b.String()
	}
	for _, row := range rows {
		b.WriteString(row + "\n")
		b.WriteString(separatorLine + "\n")
	}
	return b.String()
}

// RenderRoomUsageReport renders one row per room in 1..maxRoom that has a
// non-zero count, followed by the parse totals and any invalid entries.
func RenderRoomUsageReport(usage *entity.RoomUsage, maxRoom int) string {
	if usage == nil {
		usage = entity.NewRoomUsage()
	}

	var b strings.Builder
	b.WriteString("--- Room Usage Report ---\n")
	b.WriteString("Room | Usage Count\n")
	b.WriteString("-----|------------\n")

	reported := 0
	for room := 1; room <= maxRoom; room++ {
		if n := usage.Count(room); n > 0 {
			fmt.Fprintf(&b, "%-4d | %d\n", room, n)
			reported++
		}
	}
	if reported == 0 {
		b.WriteString("No valid room usage data found.\n")
	}

	b.WriteString("-------------------------\n")
	fmt.Fprintf(&b, "Total entries read: %d\n", usage.TotalEntries)
	fmt.Fprintf(&b, "Valid rooms logged: %d\n", usage.ValidEntries)
	b.WriteString("-------------------------\n")

	for _, entry := range usage.InvalidEntries {
		fmt.Fprintf(&b, "Warning: invalid room entry %q skipped\n", entry)
	}
	return b.String()
}
