package notify

import (
	"fmt"
	"strings"

	"vitals-monitor/internal/models"
)

// RenderAlertEmail 渲染报警邮件的主题和正文
func RenderAlertEmail(alert *models.AlertEvent) Message {
	name := alert.Subject.DisplayName()
	r := alert.Reading

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	b.WriteString("A critical health condition has been detected based on the following readings:\n\n")
	fmt.Fprintf(&b, "- Heart Rate: %d bpm\n", r.HeartRate)
	fmt.Fprintf(&b, "- Blood Pressure: %d/%d mmHg\n", r.SystolicBP, r.DiastolicBP)
	fmt.Fprintf(&b, "- Temperature: %.1f °C\n", r.Temperature)
	fmt.Fprintf(&b, "- Glucose Level: %d mg/dL\n", r.Glucose)
	fmt.Fprintf(&b, "- SpO2: %d %%\n", r.SpO2)

	if len(alert.Issues) > 0 {
		b.WriteString("\nFlagged readings:\n")
		for _, issue := range alert.Issues {
			fmt.Fprintf(&b, "- %s\n", issue.Message)
		}
	}

	if !alert.TriggeredAt.IsZero() {
		fmt.Fprintf(&b, "\nRecorded at: %s\n", alert.TriggeredAt.Format("2006-01-02 15:04:05"))
	}

	b.WriteString("\nPlease consult a medical professional immediately if you experience any symptoms.\n\n")
	b.WriteString("Regards,\nHealth Monitoring System\n")

	return Message{
		To:      alert.Recipient,
		Subject: fmt.Sprintf("%s, Health Alert Notification", name),
		Body:    b.String(),
	}
}
