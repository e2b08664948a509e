package minecraft

import "fmt"

// MemoryUnit is the unit in which an AikarsFlags heap size is given.
type MemoryUnit int

const (
	Gibibytes MemoryUnit = iota
	Mebibytes
	Kibibytes
)

// MemoryAmount is a JVM heap size, formatted the way -Xms/-Xmx expect.
type MemoryAmount struct {
	Amount uint64
	Unit   MemoryUnit
}

func (m MemoryAmount) String() string {
	switch m.Unit {
	case Mebibytes:
		return fmt.Sprintf("%dm", m.Amount)
	case Kibibytes:
		return fmt.Sprintf("%dk", m.Amount)
	default:
		return fmt.Sprintf("%dG", m.Amount)
	}
}

// DefaultMemory is used when a Minecraft launch request does not
// specify a heap size, matching the original AikarsFlags default.
var DefaultMemory = MemoryAmount{Amount: 4, Unit: Gibibytes}

// AikarsFlags synthesizes the JVM argument vector recommended at
// https://docs.papermc.io/paper/aikars-flags for running a Paper
// server jar with the given heap size.
type AikarsFlags struct {
	Memory  MemoryAmount
	JarPath string
}

// Args returns the full argument vector to pass to the "java" program.
func (f AikarsFlags) Args() []string {
	mem := f.Memory.String()
	jar := f.JarPath
	if jar == "" {
		jar = "paper.jar"
	}
	return []string{
		fmt.Sprintf("-Xms%s", mem),
		fmt.Sprintf("-Xmx%s", mem),
		"-XX:+UseG1GC",
		"-XX:+ParallelRefProcEnabled",
		"-XX:MaxGCPauseMillis=200",
		"-XX:+UnlockExperimentalVMOptions",
		"-XX:+DisableExplicitGC",
		"-XX:+AlwaysPreTouch",
		"-XX:G1NewSizePercent=30",
		"-XX:G1MaxNewSizePercent=40",
		"-XX:G1HeapRegionSize=8M",
		"-XX:G1ReservePercent=20",
		"-XX:G1HeapWastePercent=5",
		"-XX:G1MixedGCCountTarget=4",
		"-XX:InitiatingHeapOccupancyPercent=15",
		"-XX:G1MixedGCLiveThresholdPercent=90",
		"-XX:G1RSetUpdatingPauseTimePercent=5",
		"-XX:SurvivorRatio=32",
		"-XX:+PerfDisableSharedMem",
		"-XX:MaxTenuringThreshold=1",
		"-Dusing.aikars.flags=https://mcflags.emc.gs",
		"-Daikars.new.flags=true",
		"-jar",
		jar,
		"--nogui",
	}
}
