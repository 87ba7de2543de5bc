package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"passwordreset/internal/core/domain/account"
	"passwordreset/internal/core/domain/token"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charsetUTF8 = "UTF-8"

// SesMailer sends the reset notification through Amazon SES. Subject
// and body are templates with ${url}, ${userId}, ${userName} and
// ${userEmail} placeholders, substituted per message.
type SesMailer struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	senderAddress   string
	senderName      string
	serverURL       string
	subjectTemplate string
	bodyTemplate    string
}

func NewSesMailer(
	awsConfig aws.Config,
	senderName string,
	senderAddress string,
	serverURL string,
	subjectTemplate string,
	bodyTemplate string,
) *SesMailer {
	return &SesMailer{
		ses:             ses.NewFromConfig(awsConfig),
		senderAddress:   senderAddress,
		senderName:      senderName,
		serverURL:       strings.TrimRight(serverURL, "/"),
		subjectTemplate: subjectTemplate,
		bodyTemplate:    bodyTemplate,
	}
}

func (m *SesMailer) SendResetToken(ctx context.Context, a account.Account, t token.Token) error {
	if !a.Email.IsPresent || a.Email.Value == "" {
		return errors.New("account email is not defined")
	}

	resetURL := m.resetURL(t)
	subject := m.substitute(m.subjectTemplate, a, resetURL)
	body := m.substitute(m.bodyTemplate, a, resetURL)
	source := fmt.Sprintf("%s <%s>", m.senderName, m.senderAddress)

	email := string(a.Email.Value)
	_, err := m.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &source,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Message: &types.Message{
				Subject: &types.Content{
					Charset: aws.String(charsetUTF8),
					Data:    &subject,
				},
				Body: &types.Body{
					Text: &types.Content{
						Charset: aws.String(charsetUTF8),
						Data:    &body,
					},
				},
			},
		},
	)
	return err
}

func (m *SesMailer) resetURL(t token.Token) string {
	return m.serverURL + "/change-password?token=" + url.QueryEscape(string(t))
}

func (m *SesMailer) substitute(template string, a account.Account, resetURL string) string {
	return strings.NewReplacer(
		"${url}", resetURL,
		"${userId}", string(a.Username),
		"${userName}", a.Name,
		"${userEmail}", string(a.Email.Value),
	).Replace(template)
}
