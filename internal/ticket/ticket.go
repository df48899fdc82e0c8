// Package ticket renders a task as a printable 384px-wide HTML ticket,
// sized for thermal receipt printers.
package ticket

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
)

// noDueDate is rendered when the task has no due datetime.
const noDueDate = "Não definido"

// TicketData holds the substitution values for the ticket template.
type TicketData struct {
	Emoji   string
	Urgency string
	Task    string
	DueDate string
	DueHour string
}

// priorityBadge pairs the emoji and the pt-BR urgency label printed at the
// top of the ticket.
type priorityBadge struct {
	emoji   string
	urgency string
}

var priorityBadges = map[domain.TaskPriority]priorityBadge{
	domain.TaskPriorityUrgent: {emoji: "🚨", urgency: "Urgente"},
	domain.TaskPriorityHigh:   {emoji: "⚠️", urgency: "Alta"},
	domain.TaskPriorityMedium: {emoji: "❗", urgency: "Média"},
	domain.TaskPriorityLow:    {emoji: "🐢", urgency: "Baixa"},
}

// FromTask maps a task onto the ticket's substitution values. Unknown
// priorities fall back to the medium badge; a missing due datetime renders
// as "Não definido" with an empty hour line.
func FromTask(task domain.Task) TicketData {
	badge, ok := priorityBadges[task.Priority]
	if !ok {
		badge = priorityBadges[domain.TaskPriorityMedium]
	}

	data := TicketData{
		Emoji:   badge.emoji,
		Urgency: badge.urgency,
		Task:    task.Title,
		DueDate: noDueDate,
	}

	if task.DueDatetime != nil {
		data.DueDate = task.DueDatetime.Format("02/01/2006")
		data.DueHour = task.DueDatetime.Format("15:04")
	}

	return data
}

// Render produces the complete printable HTML document for the ticket.
func Render(data TicketData) (string, error) {
	var buf strings.Builder
	if err := ticketTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render ticket: %w", err)
	}
	return buf.String(), nil
}

// RenderTask is the FromTask + Render convenience used by the HTTP layer.
func RenderTask(task domain.Task) (string, error) {
	return Render(FromTask(task))
}

var ticketTemplate = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html lang="pt-br">
<head>
<meta charset="utf-8">
<style>
  html, body {
      margin: 0;
      padding: 0;
      background: white;
      width: 384px;
  }

  body {
      font-family: sans-serif;
      display: flex;
      justify-content: center;
      align-items: flex-start;
  }

  .container {
      width: 384px;
      text-align: center;
      padding: 0;
      margin: 0;
      box-sizing: border-box;
  }

  .emoji { font-size: 120px; margin-bottom: 5px; }
  .urgency { font-size: 50px; font-weight: bold; margin: 5px 0; }
  .task { font-size: 36px; margin: 5px 0; }
  .due-label { font-size: 24px; margin-top: 10px; }
  .due-date { font-size: 40px; font-weight: bold; margin-top: 3px; }
  .due-hour { font-size: 36px; font-weight: bold; margin-top: 3px; margin-bottom: 0px; }
  .separator { width: 100%; height: 2px; background-color: black; margin: 20px 0; }

  @media print {
      html, body {
          width: 384px;
      }
      body {
          align-items: flex-start;
      }
  }
</style>
</head>
<body>
  <div class="container">
    <div class="emoji">{{.Emoji}}</div>
    <div class="urgency">{{.Urgency}}</div>
    <div class="separator"></div>
    <div class="task">{{.Task}}</div>
    <div class="separator"></div>
    <div class="due-label">Prazo Máximo</div>
    <div class="due-date">{{.DueDate}}</div>
    <div class="due-hour">{{.DueHour}}</div>
  </div>
</body>
</html>
`))
