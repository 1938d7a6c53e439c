package providers

import (
	"elevate/internal/structures"
	"fmt"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors
	}
	if c.conf.Storage.Backend == "postgres" && c.conf.Storage.DSN == "" {
		return fmt.Errorf("storage.dsn is required for the postgres backend")
	}
	if c.conf.Sync.Enabled && c.conf.Sync.RedisAddr == "" {
		return fmt.Errorf("sync.redisAddr is required when sync is enabled")
	}
	return nil
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}
