package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var now = time.Now

// NewID returns "<prefix>_<random>_<unix-millis base36>".
func NewID(prefix string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return prefix + "_" + random + "_" + strconv.FormatInt(now().UnixMilli(), 36)
}

func timestamp() string {
	return now().UTC().Format(time.RFC3339)
}
