package repository

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/edsg/edsg/internal/domain"
)

func TestStoreErrMissingRow(t *testing.T) {
	err := storeErr(gorm.ErrRecordNotFound, "user")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !strings.Contains(err.Error(), "user") {
		t.Errorf("resource name dropped: %v", err)
	}
}

func TestStoreErrKeepsOutagesApart(t *testing.T) {
	outage := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

	err := storeErr(outage, "user")
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("a store outage must not read as a missing row: %v", err)
	}
	if !errors.Is(err, outage) {
		t.Fatalf("cause lost in wrapping: %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("wrapped message dropped the cause: %v", err)
	}
}
