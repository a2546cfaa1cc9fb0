package service

import (
	"fmt"
	"html"
)

func emailLayout(heading, body string) string {
	return fmt.Sprintf(`<html><body><h2>%s</h2><p>%s</p><p>The Eventia team</p></body></html>`, html.EscapeString(heading), body)
}

func registeredEmail(title string) (string, string) {
	t := html.EscapeString(title)
	return "You're registered: " + title,
		emailLayout("Registration confirmed", fmt.Sprintf("You are registered for <strong>%s</strong>.", t))
}

func unregisteredEmail(title string) (string, string) {
	t := html.EscapeString(title)
	return "Registration cancelled: " + title,
		emailLayout("Registration cancelled", fmt.Sprintf("You are no longer registered for <strong>%s</strong>.", t))
}

func publishedEmail(title string) (string, string) {
	t := html.EscapeString(title)
	return "Your event is live: " + title,
		emailLayout("Event published", fmt.Sprintf("<strong>%s</strong> has been approved and is now public.", t))
}

func rejectedEmail(title, reason string) (string, string) {
	t := html.EscapeString(title)
	return "Your event needs changes: " + title,
		emailLayout("Event rejected", fmt.Sprintf("<strong>%s</strong> was not approved.<br>Reason: %s<br>Edit the event to resubmit it.", t, html.EscapeString(reason)))
}

func cancelledEmail(title string) (string, string) {
	t := html.EscapeString(title)
	return "Event cancelled: " + title,
		emailLayout("Event cancelled", fmt.Sprintf("<strong>%s</strong> has been cancelled by the organizer.", t))
}

func organizerApprovedEmail(name string) (string, string) {
	return "You are now an organizer",
		emailLayout("Organizer request approved", fmt.Sprintf("Hi %s, you can now create events.", html.EscapeString(name)))
}

func organizerRejectedEmail(name string) (string, string) {
	return "Organizer request declined",
		emailLayout("Organizer request declined", fmt.Sprintf("Hi %s, your organizer request was not approved.", html.EscapeString(name)))
}
