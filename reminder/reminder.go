package reminder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mbachinger/taeglich/config"
	"github.com/mbachinger/taeglich/log"
)

// Channel delivers a notification to whatever surfaces them on this
// system. Fire-and-forget; the scheduler already dedupes per day, a
// channel may dedupe again by tag if it wants.
type Channel interface {
	Deliver(title, body, icon string) error
}

// State of the reminder permission machine.
type State int

const (
	// Unsupported: the host has no delivery channel. Terminal.
	Unsupported State = iota
	// Undetermined: the user has not been asked yet.
	Undetermined
	// Denied: permission refused. Terminal from in here; only an
	// external reset can undo it.
	Denied
	// GrantedActive: permitted and running.
	GrantedActive
	// GrantedPaused: permitted, but the user paused reminders.
	GrantedPaused
)

func (s State) String() string {
	switch s {
	case Undetermined:
		return "undetermined"
	case Denied:
		return "denied"
	case GrantedActive:
		return "active"
	case GrantedPaused:
		return "paused"
	default:
		return "unsupported"
	}
}

// Decision is the outcome of the external permission prompt.
type Decision string

const (
	DecisionGranted   Decision = "granted"
	DecisionDenied    Decision = "denied"
	DecisionDismissed Decision = "dismissed"
)

var (
	ErrUnsupported    = errors.New("reminder: notifications unsupported on this system")
	ErrDenied         = errors.New("reminder: permission denied, reset it externally")
	ErrAlreadyDecided = errors.New("reminder: permission already decided")
	ErrNotGranted     = errors.New("reminder: permission not granted")
	ErrBadDecision    = errors.New("reminder: unknown permission decision")
)

const (
	flagEffectivelyDisabled = "notificationsEffectivelyDisabled"
	flagPermissionGranted   = "notificationPermissionGranted"

	// IconRef is handed to the delivery channel untouched.
	IconRef = "image/logo.png"

	dateLayout = "2006-01-02"
)

// Scheduler fires each configured slot at most once per calendar day,
// keyed on persisted last-shown dates, and only while GrantedActive.
type Scheduler struct {
	slots    []config.Slot
	flags    Flags
	channel  Channel
	interval time.Duration

	// Now is the scheduler's clock; replaced in tests.
	Now func() time.Time
}

func New(slots []config.Slot, flags Flags, channel Channel, interval time.Duration) *Scheduler {
	return &Scheduler{
		slots:    slots,
		flags:    flags,
		channel:  channel,
		interval: interval,
		Now:      time.Now,
	}
}

// State derives the machine state from channel availability and the
// persisted flags.
func (s *Scheduler) State() State {
	if s.channel == nil {
		return Unsupported
	}
	switch s.flags.Get(flagPermissionGranted) {
	case "true":
		if s.flags.Get(flagEffectivelyDisabled) == "true" {
			return GrantedPaused
		}
		return GrantedActive
	case "false":
		return Denied
	default:
		return Undetermined
	}
}

// RequestPermission records the outcome of the external permission
// prompt. Only valid while Undetermined: Denied is terminal here and a
// grant is toggled, not re-requested.
func (s *Scheduler) RequestPermission(d Decision) (State, error) {
	switch s.State() {
	case Unsupported:
		return Unsupported, ErrUnsupported
	case Denied:
		return Denied, ErrDenied
	case GrantedActive, GrantedPaused:
		return s.State(), ErrAlreadyDecided
	}

	switch d {
	case DecisionGranted:
		if err := s.flags.Set(flagPermissionGranted, "true"); err != nil {
			return Undetermined, err
		}
		if err := s.flags.Delete(flagEffectivelyDisabled); err != nil {
			return GrantedActive, err
		}
		// catch up immediately instead of waiting out the poll interval
		s.CheckAndFire(s.Now())
		return GrantedActive, nil
	case DecisionDenied:
		if err := s.flags.Set(flagPermissionGranted, "false"); err != nil {
			return Undetermined, err
		}
		return Denied, nil
	case DecisionDismissed:
		// no decision was made
		return Undetermined, nil
	default:
		return Undetermined, ErrBadDecision
	}
}

// Toggle pauses active reminders or resumes paused ones.
func (s *Scheduler) Toggle() (State, error) {
	switch s.State() {
	case GrantedActive:
		if err := s.flags.Set(flagEffectivelyDisabled, "true"); err != nil {
			return GrantedActive, err
		}
		return GrantedPaused, nil
	case GrantedPaused:
		if err := s.flags.Delete(flagEffectivelyDisabled); err != nil {
			return GrantedPaused, err
		}
		s.CheckAndFire(s.Now())
		return GrantedActive, nil
	case Unsupported:
		return Unsupported, ErrUnsupported
	case Denied:
		return Denied, ErrDenied
	default:
		return Undetermined, ErrNotGranted
	}
}

// CheckAndFire fires every slot whose hour has passed and whose persisted
// last-shown date is not today, then records today. Calling it again with
// the same now is a no-op, as is any state other than GrantedActive.
func (s *Scheduler) CheckAndFire(now time.Time) {
	if s.State() != GrantedActive {
		log.Debug("reminder.check: not active, skipping")
		return
	}

	today := now.Format(dateLayout)
	for _, slot := range s.slots {
		if now.Hour() < slot.Hour {
			continue
		}
		key := lastShownKey(slot.Name)
		if s.flags.Get(key) == today {
			continue
		}

		title, body := slotMessage(slot.Name)
		if err := s.channel.Deliver(title, body, IconRef); err != nil {
			// leave the flag unset so the next poll retries
			log.Warnf("reminder.deliver.%s: %s", slot.Name, err)
			continue
		}
		if err := s.flags.Set(key, today); err != nil {
			log.Errorf("reminder.flags.set.%s: %s", slot.Name, err)
			continue
		}
		log.Infof("reminder.fired: %s for %s", slot.Name, today)
	}
}

// Run polls until ctx is cancelled. The poll interval is validated by
// config to stay under the smallest slot gap.
func (s *Scheduler) Run(ctx context.Context) {
	s.CheckAndFire(s.Now())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.CheckAndFire(now)
		}
	}
}

// Status is the scheduler's user-facing snapshot.
type Status struct {
	State string        `json:"state"`
	Text  string        `json:"text"`
	Slots []config.Slot `json:"slots"`
}

func (s *Scheduler) Status() Status {
	state := s.State()
	return Status{
		State: state.String(),
		Text:  statusText(state, s.slots),
		Slots: s.slots,
	}
}

func statusText(state State, slots []config.Slot) string {
	switch state {
	case GrantedActive:
		return fmt.Sprintf("Tägliche Erinnerungen sind aktiviert (%s).", slotHours(slots))
	case GrantedPaused:
		return "Tägliche Erinnerungen sind pausiert."
	case Denied:
		return "Benachrichtigungen blockiert. Bitte in den Systemeinstellungen ändern."
	case Undetermined:
		return "Tägliche Erinnerungen sind nicht aktiviert."
	default:
		return "Benachrichtigungen werden auf diesem System nicht unterstützt."
	}
}

func slotHours(slots []config.Slot) string {
	hours := make([]string, 0, len(slots))
	for _, slot := range slots {
		hours = append(hours, fmt.Sprintf("%02d:00", slot.Hour))
	}
	sort.Strings(hours)
	return strings.Join(hours, " & ")
}

// slotLabel maps recognized slot names to the label used in the
// notification text; anything else shows its raw name.
func slotLabel(name string) string {
	switch name {
	case "morning":
		return "Morgen"
	case "noon", "midday":
		return "Mittag"
	case "evening":
		return "Abend"
	default:
		return name
	}
}

func slotMessage(name string) (title, body string) {
	label := slotLabel(name)
	title = "Tägliches Journal - " + label
	body = fmt.Sprintf("Zeit für deinen %s-Journaleintrag! ✏️", label)
	return
}

func lastShownKey(name string) string {
	capitalized := name
	if len(name) > 0 {
		capitalized = strings.ToUpper(name[:1]) + name[1:]
	}
	return "last" + capitalized + "NotificationShownDate"
}
