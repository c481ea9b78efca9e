package startup

import (
	"fmt"
	"html"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// executable is swapped out in tests
var executable = os.Executable

// Enable registers the application to launch at system startup.
// args are passed to the binary on every launch.
func Enable(args ...string) error {
	switch runtime.GOOS {
	case "darwin":
		return enableMacOS(args)
	case "linux":
		return enableLinux(args)
	case "windows":
		return enableWindows(args)
	default:
		return errors.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Disable removes the application from system startup
func Disable() error {
	switch runtime.GOOS {
	case "darwin":
		return disableMacOS()
	case "linux":
		return disableLinux()
	case "windows":
		return disableWindows()
	default:
		return errors.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// IsEnabled checks if the application is registered for startup
func IsEnabled() bool {
	switch runtime.GOOS {
	case "darwin":
		return isEnabledMacOS()
	case "linux":
		return isEnabledLinux()
	case "windows":
		return isEnabledWindows()
	default:
		return false
	}
}

// --- macOS Implementation ---

const macOSPlistName = "com.gopher-soundboard.plist"

func macOSPlistPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "LaunchAgents", macOSPlistName)
}

func enableMacOS(args []string) error {
	execPath, err := executable()
	if err != nil {
		return errors.Wrap(err, "locate executable")
	}

	var program strings.Builder
	for _, arg := range append([]string{execPath}, args...) {
		fmt.Fprintf(&program, "        <string>%s</string>\n", html.EscapeString(arg))
	}

	plistContent := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>com.gopher-soundboard</string>
    <key>ProgramArguments</key>
    <array>
%s    </array>
    <key>RunAtLoad</key>
    <true/>
</dict>
</plist>
`, program.String())

	// Ensure LaunchAgents directory exists
	dir := filepath.Dir(macOSPlistPath())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(macOSPlistPath(), []byte(plistContent), 0644)
}

func disableMacOS() error {
	path := macOSPlistPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // Already disabled
	}
	return os.Remove(path)
}

func isEnabledMacOS() bool {
	_, err := os.Stat(macOSPlistPath())
	return err == nil
}

// --- Linux Implementation ---

const linuxDesktopName = "gopher-soundboard.desktop"

func linuxDesktopPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "autostart", linuxDesktopName)
}

func enableLinux(args []string) error {
	execPath, err := executable()
	if err != nil {
		return errors.Wrap(err, "locate executable")
	}

	desktopContent := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=GopherSoundboard
Exec=%s
Hidden=false
NoDisplay=false
X-GNOME-Autostart-enabled=true
`, commandLine(execPath, args))

	// Ensure autostart directory exists
	dir := filepath.Dir(linuxDesktopPath())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(linuxDesktopPath(), []byte(desktopContent), 0644)
}

func disableLinux() error {
	path := linuxDesktopPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // Already disabled
	}
	return os.Remove(path)
}

func isEnabledLinux() bool {
	_, err := os.Stat(linuxDesktopPath())
	return err == nil
}

// --- Windows Implementation ---

const windowsRegistryKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`
const windowsAppName = "GopherSoundboard"

func enableWindows(args []string) error {
	execPath, err := executable()
	if err != nil {
		return errors.Wrap(err, "locate executable")
	}

	// Use reg.exe to add the registry key
	cmd := exec.Command("reg", "add", windowsRegistryKey,
		"/v", windowsAppName,
		"/t", "REG_SZ",
		"/d", commandLine(execPath, args),
		"/f")
	return cmd.Run()
}

func disableWindows() error {
	cmd := exec.Command("reg", "delete", windowsRegistryKey,
		"/v", windowsAppName,
		"/f")
	output, err := cmd.CombinedOutput()
	// Ignore error if the key doesn't exist
	if err != nil && !strings.Contains(string(output), "The system was unable to find the specified registry key or value") {
		return err
	}
	return nil
}

func isEnabledWindows() bool {
	cmd := exec.Command("reg", "query", windowsRegistryKey,
		"/v", windowsAppName)
	err := cmd.Run()
	return err == nil
}

// commandLine joins a program and its arguments, quoting any that contain spaces
func commandLine(execPath string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, arg := range append([]string{execPath}, args...) {
		if strings.ContainsAny(arg, " \t\"") {
			arg = `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}
