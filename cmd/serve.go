package cmd

import (
	"context"

	"github.com/depvet/depvet/service"
)

// ServeCmd is the kong command for serving the HTTP API
type ServeCmd struct {
	targetFlags
	Addr string `short:"a" default:":8080" help:"Address to listen on (default :8080)."`
}

// Run starts the verification and the HTTP API server. Requests made while
// the computation runs see partial results plus the current phase.
func (s ServeCmd) Run() error {
	engine, table, err := s.setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = engine.Run(ctx) }()

	svc := service.NewVetService(table, s.Dir)
	return service.StartServer(svc, s.Addr)
}
