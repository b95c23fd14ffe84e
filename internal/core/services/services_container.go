package services

import (
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/opening_balances/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Period:  NewOpeningPeriodService(repos, options...),
		Balance: NewOpeningBalanceService(repos, options...),
		Detail:  NewOpeningBalanceDetailService(repos, options...),
	}
}
