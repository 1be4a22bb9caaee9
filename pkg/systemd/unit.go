package systemd

import (
	"bytes"
	"context"
	"os"
	"text/template"

	"github.com/camspiers/dayzmanager/pkg/utils"
	"github.com/pkg/errors"
)

const UnitName = "dayzmanager"

const UnitPath = "/etc/systemd/system/dayzmanager.service"

// The manager forwards stop signals to the server and waits for it, so the
// unit must not enforce its own stop timeout.
const unitTemplate = `[Unit]
Description=DayZ dedicated server managed by dayzmanager
After=network.target

[Service]
Type=simple
User={{.User}}
WorkingDirectory={{.Root}}
ExecStart={{.Binary}} --config {{.ConfigPath}} start
Restart=no
KillSignal=SIGTERM
TimeoutStopSec=infinity

[Install]
WantedBy=multi-user.target
`

type Unit struct {
	User       string
	Root       string
	Binary     string
	ConfigPath string
}

func Render(u Unit) (string, error) {
	tmpl, err := template.New("unit").Parse(unitTemplate)
	if err != nil {
		return "", errors.WithMessage(err, "failed to parse unit template")
	}

	buf := &bytes.Buffer{}
	err = tmpl.Execute(buf, u)
	if err != nil {
		return "", errors.WithMessage(err, "failed to render unit template")
	}

	return buf.String(), nil
}

// Install writes the unit file and reloads the systemd configuration.
func Install(ctx context.Context, u Unit) error {
	contents, err := Render(u)
	if err != nil {
		return err
	}

	err = os.WriteFile(UnitPath, []byte(contents), 0644)
	if err != nil {
		return errors.WithMessagef(err, "failed to write unit file %s", UnitPath)
	}

	err = utils.ExecCommand(ctx, "systemctl", "daemon-reload")
	if err != nil {
		return errors.WithMessage(err, "failed to reload systemd")
	}

	return nil
}
