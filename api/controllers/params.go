package controllers

import (
	"net/http"

	"github.com/anupamtiwari/homecraft-backend/api/validators"
	"github.com/anupamtiwari/homecraft-backend/pkg/pagination"
)

func parsedLimit(r *http.Request) (int, error) {
	return validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
}
