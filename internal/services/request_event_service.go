package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/okfde/froide-campaign-service/internal/metrics"
	"github.com/okfde/froide-campaign-service/internal/models"
	"github.com/okfde/froide-campaign-service/internal/services/provider"
	"github.com/okfde/froide-campaign-service/internal/utils"
)

const requestEventTimeout = 30 * time.Second

// ProviderSource resolves the provider of a campaign
type ProviderSource interface {
	ProviderFor(ctx context.Context, campaignID uint) (*provider.Provider, error)
}

// RequestSource loads platform requests
type RequestSource interface {
	GetByID(ctx context.Context, id uint) (*models.FoiRequest, error)
}

// RequestEventService connects newly made requests to campaign targets.
// The platform publishes one event per request carrying its reference.
type RequestEventService struct {
	providers ProviderSource
	requests  RequestSource

	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewRequestEventService(providers ProviderSource, requests RequestSource) *RequestEventService {
	return &RequestEventService{
		providers: providers,
		requests:  requests,
		stopChan:  make(chan struct{}),
	}
}

// Start consumes request events until Stop is called or the channel closes
func (s *RequestEventService) Start(msgs <-chan amqp.Delivery) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.stopChan:
				return
			case msg, ok := <-msgs:
				if !ok {
					logrus.Warn("Request event channel closed")
					return
				}
				s.process(msg)
			}
		}
	}()
}

// Stop ends the consumer loop and waits for the current event
func (s *RequestEventService) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

func (s *RequestEventService) process(msg amqp.Delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), requestEventTimeout)
	defer cancel()

	if err := s.HandleMessage(ctx, msg.Body); err != nil {
		logrus.WithError(err).Error("Failed to handle request event")
		utils.CaptureError(err)
		metrics.RequestEventsProcessed.WithLabelValues("error").Inc()
		if nackErr := msg.Nack(false, false); nackErr != nil {
			logrus.WithError(nackErr).Warn("Failed to nack request event")
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		logrus.WithError(err).Warn("Failed to ack request event")
	}
}

// HandleMessage decodes one event and connects its request. Events without
// a campaign reference or for unknown campaigns and requests are skipped.
func (s *RequestEventService) HandleMessage(ctx context.Context, body []byte) error {
	var event models.RequestCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		metrics.RequestEventsProcessed.WithLabelValues("invalid").Inc()
		logrus.WithError(err).Warn("Dropping malformed request event")
		return nil
	}

	campaignID, ident, ok := provider.ParseRef(event.Ref)
	if !ok {
		metrics.RequestEventsProcessed.WithLabelValues("skipped").Inc()
		return nil
	}

	prov, err := s.providers.ProviderFor(ctx, campaignID)
	if errors.Is(err, ErrCampaignNotFound) {
		logrus.Debugf("Request %d references unknown campaign %d", event.RequestID, campaignID)
		metrics.RequestEventsProcessed.WithLabelValues("skipped").Inc()
		return nil
	}
	if err != nil {
		return err
	}

	fr, err := s.requests.GetByID(ctx, event.RequestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.Warnf("Request %d of event not found", event.RequestID)
		metrics.RequestEventsProcessed.WithLabelValues("skipped").Inc()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load request %d: %w", event.RequestID, err)
	}

	if err := prov.ConnectRequest(ctx, ident, fr); err != nil {
		return err
	}
	metrics.RequestEventsProcessed.WithLabelValues("handled").Inc()
	return nil
}
