package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/vfg2006/users-revenue-simulator/internal/domain"
	"github.com/vfg2006/users-revenue-simulator/pkg/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// parameterKeys são os parâmetros de query aceitos pelos endpoints de simulação
var parameterKeys = []string{
	"initial_user_count",
	"acquisition_cost",
	"monthly_budget",
	"organic_spinoff",
	"decay_first_day",
	"decay_first_week",
	"decay_first_month",
	"arpdau",
}

// ValidationError descreve um parâmetro rejeitado na leitura da requisição
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errMalformedQuery indica um parâmetro que não pôde ser lido
var errMalformedQuery = errors.New("malformed query")

// errParameterRejected indica um parâmetro lido mas fora do domínio aceito
var errParameterRejected = errors.New("parameter rejected")

// bindError carrega os detalhes por campo de uma falha de leitura
type bindError struct {
	Err    error
	Errors []ValidationError
}

func (e *bindError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, v := range e.Errors {
		parts = append(parts, v.Message)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), strings.Join(parts, "; "))
}

func (e *bindError) Unwrap() error {
	return e.Err
}

// simulationRequest é a requisição de simulação já lida e validada
type simulationRequest struct {
	DateRange  domain.DateRange
	Parameters domain.SimulationParameters
}

// bindSimulationRequest lê período e parâmetros da query string.
// Parâmetros ausentes ficam com os valores padrão dos controles.
func bindSimulationRequest(r *http.Request, defaults domain.SimulationDefaults) (*simulationRequest, error) {
	query := r.URL.Query()

	startDate, err := utils.ParseDate(query.Get("start_date"), defaults.DateRange.Start)
	if err != nil {
		return nil, &bindError{Err: errMalformedQuery, Errors: []ValidationError{{
			Field:   "start_date",
			Message: "start_date must be a date in the YYYY-MM-DD format",
		}}}
	}

	endDate, err := utils.ParseDate(query.Get("end_date"), defaults.DateRange.End)
	if err != nil {
		return nil, &bindError{Err: errMalformedQuery, Errors: []ValidationError{{
			Field:   "end_date",
			Message: "end_date must be a date in the YYYY-MM-DD format",
		}}}
	}

	raw := make(map[string]any, len(parameterKeys))
	for _, key := range parameterKeys {
		if value := strings.TrimSpace(query.Get(key)); value != "" {
			raw[key] = value
		}
	}

	params := defaults.Parameters
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &params,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, &bindError{Err: errMalformedQuery, Errors: decodeErrors(err)}
	}

	if err := validate.StructCtx(r.Context(), params); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return nil, &bindError{Err: errParameterRejected, Errors: validationMessages(validationErrors)}
		}
		return nil, err
	}

	return &simulationRequest{
		DateRange:  domain.NewDateRange(startDate, endDate),
		Parameters: params,
	}, nil
}

func decodeErrors(err error) []ValidationError {
	var mapErr *mapstructure.Error
	if !errors.As(err, &mapErr) {
		return []ValidationError{{Message: err.Error()}}
	}

	errs := make([]ValidationError, 0, len(mapErr.Errors))
	for _, msg := range mapErr.Errors {
		field := ""
		// mensagens do mapstructure começam com "cannot parse 'campo' ..."
		if start := strings.Index(msg, "'"); start >= 0 {
			if end := strings.Index(msg[start+1:], "'"); end >= 0 {
				field = msg[start+1 : start+1+end]
			}
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be a number", field),
		})
	}
	return errs
}

func validationMessages(validationErrors validator.ValidationErrors) []ValidationError {
	errs := make([]ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		var message string
		switch e.Tag() {
		case "gte":
			message = fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
		case "lte":
			message = fmt.Sprintf("%s must be less than or equal to %s", field, e.Param())
		default:
			message = fmt.Sprintf("%s failed validation: %s", field, e.Tag())
		}
		errs = append(errs, ValidationError{Field: field, Message: message})
	}
	return errs
}
