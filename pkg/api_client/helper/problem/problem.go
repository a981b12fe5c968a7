package problem

import "fmt"

type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// APIError implementeert error + Problem Details (RFC 7807)
type APIError struct {
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	Status        int            `json:"status"`
	Detail        string         `json:"detail"`
	Instance      string         `json:"instance,omitempty"`
	InvalidParams []InvalidParam `json:"invalidParams,omitempty"`
}

func (e APIError) Error() string { return e.Detail }

func statusType(status int) string {
	return fmt.Sprintf("https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Status/%d", status)
}

func NewBadRequest(instance, detail string, params ...InvalidParam) APIError {
	return APIError{
		Instance:      instance,
		Type:          statusType(400),
		Title:         "Bad Request",
		Status:        400,
		Detail:        detail,
		InvalidParams: params,
	}
}

func NewNotFound(instance, detail string, params ...InvalidParam) APIError {
	return APIError{
		Instance:      instance,
		Type:          statusType(404),
		Title:         "Not Found",
		Status:        404,
		Detail:        detail,
		InvalidParams: params,
	}
}

func NewTooManyRequests(detail string) APIError {
	return APIError{
		Type:   statusType(429),
		Title:  "Too Many Requests",
		Status: 429,
		Detail: detail,
	}
}

func NewInternalServerError(detail string) APIError {
	return APIError{
		Type:   statusType(500),
		Title:  "Internal Server Error",
		Status: 500,
		Detail: detail,
	}
}

func NewServiceUnavailable(detail string) APIError {
	return APIError{
		Type:   statusType(503),
		Title:  "Service Unavailable",
		Status: 503,
		Detail: detail,
	}
}
