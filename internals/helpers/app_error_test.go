package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want int
	}{
		{KindNotFound, fiber.StatusNotFound},
		{KindConflict, fiber.StatusConflict},
		{KindInvalidInput, fiber.StatusBadRequest},
		{KindUnauthorized, fiber.StatusUnauthorized},
		{KindForbidden, fiber.StatusForbidden},
		{KindInternal, fiber.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusOf(c.kind); got != c.want {
			t.Errorf("StatusOf(%s) = %d, want %d", c.kind, got, c.want)
		}
	}
}

func TestAppErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := ErrInternal("event lookup failed", cause)

	if err.Error() != "event lookup failed" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable via errors.Is")
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	base := ErrConflict("already registered")
	wrapped := fmt.Errorf("register: %w", base)

	if !IsKind(wrapped, KindConflict) {
		t.Error("IsKind failed to unwrap")
	}
	if IsKind(wrapped, KindNotFound) {
		t.Error("IsKind matched wrong kind")
	}
	if IsKind(errors.New("plain"), KindConflict) {
		t.Error("IsKind matched a non-AppError")
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Errorf("page 2 of 3: HasNext=%v HasPrev=%v", p.HasNext, p.HasPrev)
	}

	empty := BuildPaginationFromPage(0, 1, 20)
	if empty.TotalPages != 1 || empty.HasNext || empty.HasPrev {
		t.Errorf("empty result pagination = %+v", empty)
	}
}
