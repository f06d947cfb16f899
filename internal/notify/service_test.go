package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/brandmetro/transit-ads-platform/internal/leads"
	"github.com/brandmetro/transit-ads-platform/internal/products"
	"github.com/brandmetro/transit-ads-platform/internal/stations"
	"github.com/brandmetro/transit-ads-platform/pkg/logging"
)

type fakeStations struct{}

func (fakeStations) Get(ctx context.Context, id int64) (*stations.Station, error) {
	return &stations.Station{
		ID:   id,
		Name: "Rajiv Chowk",
		City: "Delhi",
		Lines: []stations.NamedRef{
			{ID: 1, Name: "Blue Line"},
			{ID: 2, Name: "Yellow Line"},
		},
	}, nil
}

type fakeRates struct{}

func (fakeRates) ListByStation(ctx context.Context, stationID int64) ([]products.StationRate, error) {
	return []products.StationRate{
		{Product: products.Product{Name: "Platform Banner", Unit: "per panel", DurationDays: 30}, StationID: stationID, RateCents: 1250000},
	}, nil
}

type capturingSender struct {
	sent []EmailMessage
	err  error
}

func (c *capturingSender) Send(ctx context.Context, msg EmailMessage) error {
	c.sent = append(c.sent, msg)
	return c.err
}

func newTestService(sender EmailSender) *Service {
	return NewService(fakeStations{}, fakeRates{}, sender,
		Config{AdminEmail: "ads@brandmetro.example"}, nil, logging.Default())
}

func TestLeadCaptured_SendsBothEmailsWithMediaKit(t *testing.T) {
	sender := &capturingSender{}
	svc := newTestService(sender)

	stationID := int64(1)
	lead := &leads.Lead{
		ID: 7, Requirement: leads.RequirementAdvertise,
		Name: "A", Email: "a@b.com", Phone: "9999999999",
		StationID: &stationID, StationName: "Rajiv Chowk", AdFormat: "Platform Banner",
	}
	if err := svc.LeadCaptured(context.Background(), lead); err != nil {
		t.Fatalf("LeadCaptured: %v", err)
	}

	if len(sender.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(sender.sent))
	}
	requester, admin := sender.sent[0], sender.sent[1]
	if requester.To != "a@b.com" {
		t.Errorf("requester recipient = %q", requester.To)
	}
	if len(requester.Attachments) != 1 {
		t.Fatalf("requester attachments = %d, want 1", len(requester.Attachments))
	}
	att := requester.Attachments[0]
	if att.ContentType != "application/pdf" || !bytes.HasPrefix(att.Data, []byte("%PDF")) {
		t.Errorf("attachment = %q (%d bytes)", att.ContentType, len(att.Data))
	}
	if admin.To != "ads@brandmetro.example" {
		t.Errorf("admin recipient = %q", admin.To)
	}
	if len(admin.Attachments) != 0 {
		t.Errorf("admin email has %d attachments", len(admin.Attachments))
	}
}

func TestLeadCaptured_NoStationSkipsMediaKit(t *testing.T) {
	sender := &capturingSender{}
	svc := newTestService(sender)

	lead := &leads.Lead{ID: 8, Requirement: leads.RequirementListInventory,
		Name: "B", Email: "b@c.com", Phone: "8"}
	if err := svc.LeadCaptured(context.Background(), lead); err != nil {
		t.Fatalf("LeadCaptured: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(sender.sent))
	}
	if len(sender.sent[0].Attachments) != 0 {
		t.Errorf("unexpected attachment on station-less lead")
	}
}

// Both emails are attempted even when the sender fails; the error comes back
// joined for the caller's log line.
func TestLeadCaptured_SenderFailureStillAttemptsAll(t *testing.T) {
	sender := &capturingSender{err: errors.New("provider down")}
	svc := newTestService(sender)

	lead := &leads.Lead{ID: 9, Requirement: leads.RequirementAdvertise,
		Name: "C", Email: "c@d.com", Phone: "7"}
	err := svc.LeadCaptured(context.Background(), lead)
	if err == nil {
		t.Fatal("want error")
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d sends attempted, want 2", len(sender.sent))
	}
}

func TestBuildRawMessage(t *testing.T) {
	raw, err := buildRawMessage("BrandMetro <ads@brandmetro.example>", EmailMessage{
		To:      "a@b.com",
		Subject: "Media kit",
		Body:    "see attached",
		Attachments: []Attachment{
			{Filename: "media-kit.pdf", ContentType: "application/pdf", Data: []byte("%PDF-fake")},
		},
	})
	if err != nil {
		t.Fatalf("buildRawMessage: %v", err)
	}
	for _, want := range []string{"multipart/mixed", "To: a@b.com", "Subject: Media kit", "media-kit.pdf", "base64"} {
		if !bytes.Contains(raw, []byte(want)) {
			t.Errorf("raw message missing %q", want)
		}
	}
}
