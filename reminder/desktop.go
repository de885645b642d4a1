package reminder

import "github.com/gen2brain/beeep"

type desktopChannel struct{}

// DesktopChannel delivers through the system notification daemon.
func DesktopChannel() Channel {
	return desktopChannel{}
}

func (desktopChannel) Deliver(title, body, icon string) error {
	return beeep.Notify(title, body, icon)
}
