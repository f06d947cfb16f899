// Package notify implements the best-effort side effects that follow a lead
// submission: a media-kit PDF and two emails. Nothing here is retried or
// persisted; failures surface only in logs and metrics.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/brandmetro/transit-ads-platform/internal/leads"
	"github.com/brandmetro/transit-ads-platform/internal/mediakit"
	"github.com/brandmetro/transit-ads-platform/internal/observability/metrics"
	"github.com/brandmetro/transit-ads-platform/internal/products"
	"github.com/brandmetro/transit-ads-platform/internal/stations"
	"github.com/brandmetro/transit-ads-platform/pkg/logging"
)

// StationSource yields the station a lead points at.
type StationSource interface {
	Get(ctx context.Context, id int64) (*stations.Station, error)
}

// RateSource yields the rate card for a station.
type RateSource interface {
	ListByStation(ctx context.Context, stationID int64) ([]products.StationRate, error)
}

// Config tunes the outbound messages.
type Config struct {
	BrandName  string
	AdminEmail string
}

// Service renders the media kit and sends the requester and admin emails.
type Service struct {
	stations StationSource
	rates    RateSource
	sender   EmailSender
	cfg      Config
	metrics  *metrics.LeadMetrics
	logger   *logging.Logger
}

func NewService(st StationSource, rates RateSource, sender EmailSender, cfg Config, m *metrics.LeadMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.BrandName == "" {
		cfg.BrandName = "BrandMetro"
	}
	return &Service{stations: st, rates: rates, sender: sender, cfg: cfg, metrics: m, logger: logger}
}

// LeadCaptured runs the full notification sequence for one captured lead.
// Each step is attempted even when an earlier one failed; the joined error is
// for the caller's log line only.
func (s *Service) LeadCaptured(ctx context.Context, lead *leads.Lead) error {
	var errs []error

	attachment, err := s.buildMediaKit(ctx, lead)
	if err != nil {
		s.metrics.ObserveNotification("pdf", "error")
		s.logger.Warn("media kit render failed", "lead_id", lead.ID, "error", err)
		errs = append(errs, err)
	} else if attachment != nil {
		s.metrics.ObserveNotification("pdf", "ok")
	}

	if err := s.sendRequesterEmail(ctx, lead, attachment); err != nil {
		s.metrics.ObserveNotification("requester_email", "error")
		s.logger.Warn("requester email failed", "lead_id", lead.ID, "error", err)
		errs = append(errs, err)
	} else {
		s.metrics.ObserveNotification("requester_email", "ok")
	}

	if err := s.sendAdminEmail(ctx, lead); err != nil {
		s.metrics.ObserveNotification("admin_email", "error")
		s.logger.Warn("admin email failed", "lead_id", lead.ID, "error", err)
		errs = append(errs, err)
	} else {
		s.metrics.ObserveNotification("admin_email", "ok")
	}

	return errors.Join(errs...)
}

// buildMediaKit returns nil without error when the lead references no station.
func (s *Service) buildMediaKit(ctx context.Context, lead *leads.Lead) (*Attachment, error) {
	if lead.StationID == nil {
		return nil, nil
	}
	st, err := s.stations.Get(ctx, *lead.StationID)
	if err != nil {
		return nil, fmt.Errorf("notify: load station: %w", err)
	}
	rates, err := s.rates.ListByStation(ctx, st.ID)
	if err != nil {
		return nil, fmt.Errorf("notify: load rates: %w", err)
	}

	doc := &mediakit.Document{
		BrandName:     s.cfg.BrandName,
		StationName:   st.Name,
		Address:       st.Address,
		City:          st.City,
		Description:   st.Description,
		DailyFootfall: st.DailyFootfall,
	}
	for _, l := range st.Lines {
		doc.Lines = append(doc.Lines, l.Name)
	}
	for _, a := range st.Audiences {
		doc.Audiences = append(doc.Audiences, a.Name)
	}
	for _, r := range rates {
		doc.Rates = append(doc.Rates, mediakit.Rate{
			Product:      r.Name,
			Format:       r.Format,
			RateCents:    r.RateCents,
			Unit:         r.Unit,
			DurationDays: int64(r.DurationDays),
		})
	}

	data, err := mediakit.Render(doc)
	if err != nil {
		return nil, err
	}
	return &Attachment{
		Filename:    "media-kit.pdf",
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

func (s *Service) sendRequesterEmail(ctx context.Context, lead *leads.Lead, attachment *Attachment) error {
	msg := EmailMessage{
		To:      lead.Email,
		ToName:  lead.Name,
		Subject: fmt.Sprintf("Thanks for your inquiry - %s", s.cfg.BrandName),
		Body:    requesterBody(s.cfg.BrandName, lead),
	}
	if attachment != nil {
		msg.Attachments = []Attachment{*attachment}
	}
	return s.sender.Send(ctx, msg)
}

func (s *Service) sendAdminEmail(ctx context.Context, lead *leads.Lead) error {
	if s.cfg.AdminEmail == "" {
		return nil
	}
	return s.sender.Send(ctx, EmailMessage{
		To:      s.cfg.AdminEmail,
		Subject: fmt.Sprintf("New lead #%d (%s)", lead.ID, lead.Requirement),
		Body:    adminBody(lead),
	})
}

func requesterBody(brand string, lead *leads.Lead) string {
	body := fmt.Sprintf("Hi %s,\n\nThanks for reaching out to %s. We have received your inquiry", lead.Name, brand)
	if lead.StationName != "" {
		body += fmt.Sprintf(" about %s", lead.StationName)
		if lead.AdFormat != "" {
			body += fmt.Sprintf(" (%s)", lead.AdFormat)
		}
	}
	body += " and our team will get back to you within one business day.\n"
	if lead.StationName != "" {
		body += "\nThe attached media kit covers the station profile and current rate card.\n"
	}
	body += fmt.Sprintf("\nRegards,\nTeam %s\n", brand)
	return body
}

func adminBody(lead *leads.Lead) string {
	body := fmt.Sprintf("New lead captured.\n\nID: %d\nRequirement: %s\nName: %s\nEmail: %s\nPhone: %s\n",
		lead.ID, lead.Requirement, lead.Name, lead.Email, lead.Phone)
	if lead.Company != "" {
		body += fmt.Sprintf("Company: %s\n", lead.Company)
	}
	if lead.StationName != "" {
		body += fmt.Sprintf("Station: %s\n", lead.StationName)
	}
	if lead.AdFormat != "" {
		body += fmt.Sprintf("Ad format: %s\n", lead.AdFormat)
	}
	if lead.BudgetBand != "" {
		body += fmt.Sprintf("Budget: %s\n", lead.BudgetBand)
	}
	if lead.Message != "" {
		body += fmt.Sprintf("\nMessage:\n%s\n", lead.Message)
	}
	return body
}

// Ensure interface compliance
var _ leads.Notifier = (*Service)(nil)
