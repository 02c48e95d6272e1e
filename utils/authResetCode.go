package utils

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"CityGeneral/cache"
)

const resetCodeExpiry = 15 * time.Minute

// GenerateResetCode generates a random 6-digit reset code.
func GenerateResetCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// SetResetCode stores the reset code for an email with a 15 minute TTL.
func SetResetCode(ctx context.Context, c *cache.Cache, email, code string) error {
	return c.Set(ctx, "reset_code:"+email, code, resetCodeExpiry)
}

// GetResetCode retrieves the reset code for an email, nil if none is set.
func GetResetCode(ctx context.Context, c *cache.Cache, email string) (*string, error) {
	code, err := c.Get(ctx, "reset_code:"+email)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, nil
	}
	return &code, nil
}

// DeleteResetCode removes the reset code for an email.
func DeleteResetCode(ctx context.Context, c *cache.Cache, email string) error {
	return c.Delete(ctx, "reset_code:"+email)
}
