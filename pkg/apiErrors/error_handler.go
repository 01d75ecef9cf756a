package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro do painel
const (
	// Erros de configuração
	ErrSchema = "CFG_001" // Feed de doações sem as colunas obrigatórias

	// Erros de dados
	ErrEmptyData        = "DATA_001" // Nenhuma doação válida
	ErrInsufficientData = "DATA_002" // Menos doadores do que clusters
	ErrAmountOutOfRange = "DATA_003" // Total de doações fora do limite numérico

	// Erros de validação
	ErrInvalidRequest = "VAL_001" // Parâmetro inválido
	ErrInvalidFormat  = "VAL_003" // Formato de dados inválido

	// Erros do servidor
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_003" // Erro na origem dos dados
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrSchema:           http.StatusInternalServerError,
	ErrEmptyData:        http.StatusUnprocessableEntity,
	ErrInsufficientData: http.StatusUnprocessableEntity,
	ErrAmountOutOfRange: http.StatusUnprocessableEntity,
	ErrInvalidRequest:   http.StatusBadRequest,
	ErrInvalidFormat:    http.StatusBadRequest,
	ErrInternalServer:   http.StatusInternalServerError,
	ErrExternalService:  http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP do código; códigos desconhecidos viram 500
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}
