package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Slot is a named time-of-day threshold at which a reminder may fire
// once per day.
type Slot struct {
	Name string
	Hour int
}

type Config struct {
	Addr         string
	DBPath       string
	FlagsPath    string
	Slots        []Slot
	PollInterval time.Duration
	Debug        bool
}

// Polling must stay below the smallest gap between slot hours, or a
// threshold crossed between two polls could slip to the next day.
const maxPollInterval = 30 * time.Minute

func ParseFlags() (cfg Config, err error) {
	_ = godotenv.Load()

	var host string
	flag.StringVar(&host, "host", envOr("JOURNAL_HOST", "127.0.0.1"), "listen host name (default 127.0.0.1)")
	var port uint
	flag.UintVar(&port, "port", 8600, "listen port number (default 8600)")
	flag.StringVar(&cfg.DBPath, "db-path", envOr("JOURNAL_DB_PATH", "journal.sqlite"), "path to SQLite3 DB file (default journal.sqlite)")
	flag.StringVar(&cfg.FlagsPath, "flags-path", envOr("JOURNAL_FLAGS_PATH", "journal.flags"), "directory for persisted reminder flags (default journal.flags)")
	var slots string
	flag.StringVar(&slots, "reminder-slots", envOr("JOURNAL_REMINDER_SLOTS", "noon=12,evening=20"), "reminder slots as name=hour pairs (default noon=12,evening=20)")
	flag.DurationVar(&cfg.PollInterval, "poll-interval", 15*time.Minute, "reminder polling interval, at most 30m (default 15m)")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))

	cfg.Slots, err = ParseSlots(slots)
	if err != nil {
		return
	}

	if cfg.PollInterval <= 0 || cfg.PollInterval > maxPollInterval {
		err = errors.New("-poll-interval must be between 0 and 30m")
	}

	return
}

// ParseSlots parses a "name=hour,name=hour" list. An empty string means
// no reminder slots at all, which is a valid configuration.
func ParseSlots(s string) (slots []Slot, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}

	seen := map[string]bool{}
	for _, pair := range strings.Split(s, ",") {
		name, hourStr, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("malformed reminder slot %q, want name=hour", pair)
		}
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return nil, fmt.Errorf("duplicate or empty reminder slot name in %q", pair)
		}
		hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
		if err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("reminder slot %q: hour must be 0..23", pair)
		}
		seen[name] = true
		slots = append(slots, Slot{Name: name, Hour: hour})
	}
	return
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
