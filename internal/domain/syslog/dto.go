package syslog

import "github.com/linskybing/formbuilder-go/pkg/jsonval"

type CreateLogInput struct {
	Level    string         `json:"level" example:"info"`
	Category string         `json:"category" example:"forms"`
	Message  string         `json:"message" example:"form created"`
	Context  *jsonval.Value `json:"context" swaggertype:"object"`
}

type ClearResult struct {
	DeletedCount int64 `json:"deleted_count"`
}
