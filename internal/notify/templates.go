package notify

import (
	"fmt"
	"strings"
	"time"

	"sitecms/internal/model"
)

// ContactReceived tells the site owner about a new contact message.
func ContactReceived(to string, msg *model.ContactMessage) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "New contact message from %s <%s>\n\n", msg.Name, msg.Email)
	writeOptional(&b, "Phone", msg.Phone)
	writeOptional(&b, "Subject", msg.Subject)
	fmt.Fprintf(&b, "Received: %s\n\n", msg.CreatedAt.Format(time.RFC1123))
	b.WriteString(msg.Message)
	b.WriteString("\n")

	subject := "New contact message"
	if msg.Subject != nil && *msg.Subject != "" {
		subject += ": " + *msg.Subject
	}
	return Message{To: to, ReplyTo: msg.Email, Subject: subject, Body: b.String()}
}

// ApplicationReceived tells the site owner about a new job application.
func ApplicationReceived(to string, app *model.JobApplication) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "New job application from %s <%s>\n\n", app.Name, app.Email)
	writeOptional(&b, "Position", app.Position)
	writeOptional(&b, "Phone", app.Phone)
	writeOptional(&b, "LinkedIn", app.LinkedInURL)
	writeOptional(&b, "CV", app.CVURL)
	fmt.Fprintf(&b, "Received: %s\n", app.CreatedAt.Format(time.RFC1123))
	if app.Message != nil && *app.Message != "" {
		b.WriteString("\n")
		b.WriteString(*app.Message)
		b.WriteString("\n")
	}

	subject := "New job application"
	if app.Position != nil && *app.Position != "" {
		subject += ": " + *app.Position
	}
	return Message{To: to, ReplyTo: app.Email, Subject: subject, Body: b.String()}
}

// ReplySent sends an admin reply to the original submitter, quoting the
// original message.
func ReplySent(original *model.ContactMessage, reply *model.ContactReply, replyTo string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", original.Name)
	b.WriteString(reply.Reply)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "On %s you wrote:\n", original.CreatedAt.Format(time.RFC1123))
	for _, line := range strings.Split(original.Message, "\n") {
		b.WriteString("> ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	subject := "Re: your message"
	if original.Subject != nil && *original.Subject != "" {
		subject = "Re: " + *original.Subject
	}
	return Message{To: original.Email, ReplyTo: replyTo, Subject: subject, Body: b.String()}
}

func writeOptional(b *strings.Builder, label string, v *string) {
	if v == nil || *v == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, *v)
}
