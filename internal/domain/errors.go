package domain

import (
	"errors"
	"fmt"
)

// Erros do pipeline de segmentação
var (
	// Estruturais: encerram a renderização atual
	ErrSchema           = errors.New("donation feed schema mismatch")
	ErrEmptyData        = errors.New("no valid data")
	ErrInsufficientData = errors.New("insufficient data")
	ErrAmountOverflow   = errors.New("donation total out of range")

	// Validação dos parâmetros do usuário
	ErrInvalidClusterCount = errors.New("invalid cluster count")
	ErrUnknownSegment      = errors.New("unknown segment")
	ErrInvalidDateRange    = errors.New("invalid date range")

	// Falha de comunicação com a origem dos dados
	ErrProviderUnavailable = errors.New("donation provider unavailable")
)

// InsufficientDataError informa quantos doadores existem e até qual k é possível clusterizar
type InsufficientDataError struct {
	Donors int
	K      int
}

// Error implementa a interface error
func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %d donors for k=%d, reduce k to at most %d",
		ErrInsufficientData.Error(), e.Donors, e.K, e.MaxK())
}

// Unwrap retorna o erro sentinela
func (e *InsufficientDataError) Unwrap() error {
	return ErrInsufficientData
}

// MaxK é o maior k utilizável com a quantidade atual de doadores
func (e *InsufficientDataError) MaxK() int {
	return e.Donors
}
