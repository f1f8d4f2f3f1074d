package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const (
	msgOK                  = "успешно"
	msgInternalError       = "внутренняя ошибка сервера"
	msgUnauthorized        = "требуется авторизация"
	msgTooManyRequests     = "слишком много запросов, повторите позже"
	maxRequestBodyBytes    = 1 << 20
	contentTypeHeader      = "Content-Type"
	contentTypeApplication = "application/json"
)

// ErrEmptyBody возвращается DecodeJSON, если тело запроса пустое
var ErrEmptyBody = errors.New("request body is empty")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Response единый формат ответа API
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
}

// RespondJSON отправляет успешный ответ с данными
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Response{StatusCode: status, Data: data, Message: msgOK})
}

// RespondError отправляет ответ с ошибкой, data всегда null
func RespondError(w http.ResponseWriter, status int, message string) {
	write(w, status, Response{StatusCode: status, Data: nil, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter) {
	RespondError(w, http.StatusUnauthorized, msgUnauthorized)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondTooManyRequests(w http.ResponseWriter) {
	RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set(contentTypeHeader, contentTypeApplication)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// DecodeJSON читает JSON из тела запроса (не больше 1 МБ).
// Неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

// Validate проверяет DTO по тегам `validate`
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// DecodeAndValidate DecodeJSON + Validate
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}
	return Validate(dst)
}
