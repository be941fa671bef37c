package factory

import (
	"fmt"

	"github.com/mikey/llm-scam-honeypot/internal/adapters/httpapi"
	"github.com/mikey/llm-scam-honeypot/internal/config"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"github.com/mikey/llm-scam-honeypot/internal/ports"
	"go.uber.org/zap"
)

// EndpointFactory creates message endpoints based on configuration
type EndpointFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.HoneypotService
}

// NewEndpointFactory creates a new endpoint factory
func NewEndpointFactory(cfg *config.Config, logger *zap.Logger, service *core.HoneypotService) *EndpointFactory {
	return &EndpointFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateMessageEndpoint creates the transport serving inbound messages
func (f *EndpointFactory) CreateMessageEndpoint() (ports.MessageEndpoint, error) {
	serverCfg := f.cfg.GetServer()

	requestTimeout, err := f.cfg.GetDuration("server.request_timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid server request timeout: %w", err)
	}

	return httpapi.NewServer(
		f.service,
		f.logger,
		serverCfg.ListenAddress,
		serverCfg.APIKey,
		requestTimeout,
	), nil
}
