package service

import (
	"errors"

	"gorm.io/gorm"

	"taskboard-api/internal/response"
)

// repoError maps a repository error to an AppError. A missing row becomes
// NOT_FOUND with notFoundMsg, anything else INTERNAL_ERROR.
func repoError(err error, notFoundMsg, failureMsg string) error {
	if err == nil {
		return nil
	}
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFoundError(notFoundMsg, "")
	}
	return response.NewAppError(response.ErrCodeInternal, failureMsg, err.Error())
}

func internalError(msg string, err error) error {
	return response.NewAppError(response.ErrCodeInternal, msg, err.Error())
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
