package service

import (
	"errors"

	"github.com/kmorishita/tasklane/internal/repository"
)

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
