/*
	service package defines the long-running services that make up the
	wikisearch application and a group runner that executes them in
	parallel until the shared context gets cancelled or one of them fails.
*/

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Service describes a long-running component of the application.
type Service interface {
	// Name returns the name of the service.
	Name() string

	// Run executes the service and blocks until the context gets
	// cancelled or an error occurs.
	Run(context.Context) error
}

// Group is a list of Service instances that execute in parallel.
type Group []Service

// Execute runs every service in the group using the provided context. It
// blocks until all services have returned, either because the context was
// cancelled or because one of them reported an error; the first failure
// cancels the rest. All reported errors are accumulated into the returned
// error.
func (g Group) Execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	runCtx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	var wg sync.WaitGroup
	errChan := make(chan error, len(g))

	wg.Add(len(g))
	for _, svc := range g {
		go func(svc Service) {
			defer wg.Done()

			if err := svc.Run(runCtx); err != nil {
				errChan <- fmt.Errorf("%s: %w", svc.Name(), err)

				cancelFn()
			}
		}(svc)
	}

	<-runCtx.Done()
	wg.Wait()

	var err error
	close(errChan)
	for svcErr := range errChan {
		err = multierror.Append(err, svcErr)
	}

	return err
}
