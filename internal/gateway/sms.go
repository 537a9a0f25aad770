package gateway

import (
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSNotifier sends best-effort status notifications. A nil notifier or
// missing credentials disable sending; failures are logged, never
// propagated, so matching and cancellation flows stay unaffected.
type SMSNotifier struct {
	client *twilio.RestClient
	from   string
}

func NewSMSNotifier(accountSID, authToken, from string) *SMSNotifier {
	if accountSID == "" || authToken == "" || from == "" {
		return nil
	}
	return &SMSNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (n *SMSNotifier) Send(to, body string) {
	if n == nil || n.client == nil || to == "" {
		return
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(body)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		log.Printf("[SMS] send to %s failed: %v", to, err)
	}
}
