package minecraft

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Properties holds the subset of a Paper server's server.properties a
// launch request can configure; unset fields fall back to vanilla's own
// defaults by simply not being written.
type Properties struct {
	ServerPort      int
	MOTD            string
	MaxPlayers      int
	OnlineMode      *bool
	ViewDistance    int
	Difficulty      string
	LevelSeed       string
	AcceptEULA      bool
	ExtraProperties map[string]string
}

// WriteTo writes server.properties and, if AcceptEULA is set,
// eula.txt, into dir. It is the Prepare hook a minecraft.Launcher
// attaches to a supervisor.CreationRequest, matching the original
// implementation's practice of staging a server directory before the
// process is ever spawned.
func (p Properties) WriteTo(dir string) error {
	values := map[string]string{}
	if p.ServerPort != 0 {
		values["server-port"] = fmt.Sprintf("%d", p.ServerPort)
	}
	if p.MOTD != "" {
		values["motd"] = p.MOTD
	}
	if p.MaxPlayers != 0 {
		values["max-players"] = fmt.Sprintf("%d", p.MaxPlayers)
	}
	if p.OnlineMode != nil {
		values["online-mode"] = fmt.Sprintf("%t", *p.OnlineMode)
	}
	if p.ViewDistance != 0 {
		values["view-distance"] = fmt.Sprintf("%d", p.ViewDistance)
	}
	if p.Difficulty != "" {
		values["difficulty"] = p.Difficulty
	}
	if p.LevelSeed != "" {
		values["level-seed"] = p.LevelSeed
	}
	for k, v := range p.ExtraProperties {
		values[k] = v
	}

	if err := writeProperties(filepath.Join(dir, "server.properties"), values); err != nil {
		return err
	}

	eula := "eula=false\n"
	if p.AcceptEULA {
		eula = "eula=true\n"
	}
	if err := os.WriteFile(filepath.Join(dir, "eula.txt"), []byte(eula), 0o644); err != nil {
		return fmt.Errorf("minecraft: write eula.txt: %w", err)
	}
	return nil
}

func writeProperties(path string, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("minecraft: create server.properties: %w", err)
	}
	defer f.Close()

	for _, k := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", k, values[k]); err != nil {
			return fmt.Errorf("minecraft: write server.properties: %w", err)
		}
	}
	return nil
}
