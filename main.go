package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool

	flagDPI           int
	flagDPIMode       int
	flagLEDBrightness int
	flagLEDColor      string
	flagLEDEffect     string
	flagMotionSync    string
	flagLodRipple     string
	flagAngleSnapping string
	flagPollingRate   int
	flagProfile       int
	flagRestore       bool
)

var rootCmd = &cobra.Command{
	Use:   "pulsar-config",
	Short: "Pulsar X2V2 Mini configuration tool",
	Long:  "Configures a Pulsar X2V2 Mini wireless mouse over its USB receiver and prints the resulting settings as JSON",
	Run:   runConfigure,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for device events (DPI mode button, power)",
	Run:   runWatch,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available polling rates",
	Run:   runListRates,
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump raw device memory as hex",
	Run:   runDump,
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debug the connection to the Pulsar receiver",
	Run:   runDebug,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().IntVar(&flagDPI, "dpi", 0, "DPI for the active mode (multiple of 50)")
	rootCmd.Flags().IntVar(&flagDPIMode, "dpi-mode", 0, "active DPI mode (0-3)")
	rootCmd.Flags().IntVar(&flagLEDBrightness, "led-brightness", 0, "LED brightness (0-255)")
	rootCmd.Flags().StringVar(&flagLEDColor, "led-color", "", "LED color for the active mode (#rrggbb)")
	rootCmd.Flags().StringVar(&flagLEDEffect, "led-effect", "", "LED effect (off, steady, breathe)")
	rootCmd.Flags().StringVar(&flagMotionSync, "motion-sync", "", "motion sync (on, off)")
	rootCmd.Flags().StringVar(&flagLodRipple, "lod-ripple", "", "lift-off ripple control (on, off)")
	rootCmd.Flags().StringVar(&flagAngleSnapping, "angle-snapping", "", "angle snapping (on, off)")
	rootCmd.Flags().IntVar(&flagPollingRate, "polling-rate", 0, "polling rate in Hz (125, 250, 500, 1000)")
	rootCmd.Flags().IntVar(&flagProfile, "profile", 0, "switch the active profile")
	rootCmd.Flags().BoolVar(&flagRestore, "restore", false, "restore factory-default settings")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(debugCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initMouse() (*X2V2Mini, Transport, error) {
	config, err := LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	transport, err := OpenHIDTransport(config)
	if err != nil {
		return nil, nil, err
	}

	return NewX2V2Mini(transport), transport, nil
}

func parseOnOff(value string) (bool, error) {
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid value %q (want on or off)", value)
	}
}

func runConfigure(cmd *cobra.Command, args []string) {
	mouse, transport, err := initMouse()
	if err != nil {
		log.Fatalf("Failed to initialize mouse: %v", err)
	}
	defer transport.Close()

	if flagRestore {
		if err := mouse.Restore(); err != nil {
			log.Fatalf("Failed to restore factory defaults: %v", err)
		}
		fmt.Println("♻️ Restored factory-default settings")
	}

	if err := mouse.ReadSettings(); err != nil {
		log.Fatalf("Failed to read settings: %v", err)
	}

	if cmd.Flags().Changed("polling-rate") {
		if err := mouse.SetPollingRate(flagPollingRate); err != nil {
			log.Fatalf("Failed to set polling rate: %v", err)
		}
	}

	if cmd.Flags().Changed("dpi-mode") {
		if err := mouse.SetDPIMode(flagDPIMode); err != nil {
			log.Fatalf("Failed to set DPI mode: %v", err)
		}
	}

	if cmd.Flags().Changed("led-brightness") {
		if err := mouse.SetLEDBrightness(flagLEDBrightness); err != nil {
			log.Fatalf("Failed to set LED brightness: %v", err)
		}
	}

	if cmd.Flags().Changed("led-color") {
		if err := mouse.SetActiveLEDColor(flagLEDColor); err != nil {
			log.Fatalf("Failed to set LED color: %v", err)
		}
	}

	if cmd.Flags().Changed("motion-sync") {
		enabled, err := parseOnOff(flagMotionSync)
		if err != nil {
			log.Fatalf("Invalid --motion-sync: %v", err)
		}
		if err := mouse.SetMotionSync(enabled); err != nil {
			log.Fatalf("Failed to set motion sync: %v", err)
		}
	}

	if cmd.Flags().Changed("lod-ripple") {
		enabled, err := parseOnOff(flagLodRipple)
		if err != nil {
			log.Fatalf("Invalid --lod-ripple: %v", err)
		}
		if err := mouse.SetLodRipple(enabled); err != nil {
			log.Fatalf("Failed to set lift-off ripple: %v", err)
		}
	}

	if cmd.Flags().Changed("angle-snapping") {
		enabled, err := parseOnOff(flagAngleSnapping)
		if err != nil {
			log.Fatalf("Invalid --angle-snapping: %v", err)
		}
		if err := mouse.SetAngleSnapping(enabled); err != nil {
			log.Fatalf("Failed to set angle snapping: %v", err)
		}
	}

	if cmd.Flags().Changed("led-effect") {
		if err := applyLEDEffect(mouse, flagLEDEffect); err != nil {
			log.Fatalf("Failed to set LED effect: %v", err)
		}
	}

	if cmd.Flags().Changed("dpi") {
		if err := mouse.SetActiveDPI(flagDPI); err != nil {
			log.Fatalf("Failed to set DPI: %v", err)
		}
	}

	if cmd.Flags().Changed("profile") {
		if flagProfile < 0 || flagProfile > 0xff {
			log.Fatalf("Invalid profile: %d", flagProfile)
		}
		if err := mouse.SetProfile(byte(flagProfile)); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}
	}

	snapshot, err := buildSnapshot(mouse)
	if err != nil {
		log.Fatalf("Failed to read device state: %v", err)
	}
	out, err := snapshot.JSON()
	if err != nil {
		log.Fatalf("Failed to render snapshot: %v", err)
	}
	fmt.Println(out)
}

func applyLEDEffect(mouse *X2V2Mini, effect string) error {
	switch effect {
	case "off":
		return mouse.SetLEDEnabled(false)
	case "steady":
		if err := mouse.SetLEDEffect(LED_EFFECT_STEADY); err != nil {
			return err
		}
		return mouse.SetLEDEnabled(true)
	case "breathe":
		if err := mouse.SetLEDEffect(LED_EFFECT_BREATHE); err != nil {
			return err
		}
		return mouse.SetLEDEnabled(true)
	default:
		return fmt.Errorf("invalid led effect %q (want off, steady or breathe)", effect)
	}
}

func runWatch(cmd *cobra.Command, args []string) {
	config, err := LoadConfig(configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	transport, err := OpenHIDTransport(config)
	if err != nil {
		log.Fatalf("Failed to open device: %v", err)
	}
	defer transport.Close()

	notifications := NewNotificationManager()
	notifications.ShowWatcherStarted()

	watcher := NewEventWatcher(transport, config, notifications)
	watcher.Start()
	defer watcher.Stop()

	fmt.Println("👀 Watching for device events (Ctrl+C to stop)...")

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("\n👋 Shutting down...")
}

func runListRates(cmd *cobra.Command, args []string) {
	fmt.Println("Available polling rates:")
	for _, rate := range []int{125, 250, 500, 1000} {
		fmt.Printf("  %dHz\n", rate)
	}
}

func runDump(cmd *cobra.Command, args []string) {
	mouse, transport, err := initMouse()
	if err != nil {
		log.Fatalf("Failed to initialize mouse: %v", err)
	}
	defer transport.Close()

	dump, err := mouse.DumpMemory()
	if err != nil {
		log.Fatalf("Failed to dump memory: %v", err)
	}

	for i := 0; i < len(dump); i += 16 {
		end := i + 16
		if end > len(dump) {
			end = len(dump)
		}
		fmt.Printf("%04x: % 02x\n", i, dump[i:end])
	}
}

func runDebug(cmd *cobra.Command, args []string) {
	fmt.Println("🔧 Pulsar Device Debug Mode")
	fmt.Println("===========================")

	fmt.Println("🔌 Testing connection...")
	mouse, transport, err := initMouse()
	if err != nil {
		fmt.Printf("❌ Failed to connect: %v\n", err)
		return
	}
	defer transport.Close()

	on, err := mouse.IsOn()
	if err != nil {
		fmt.Printf("❌ Status query failed: %v\n", err)
		return
	}
	fmt.Printf("✅ Receiver responding, mouse powered on: %v\n", on)

	power, err := mouse.GetPower()
	if err != nil {
		fmt.Printf("❌ Power query failed: %v\n", err)
		return
	}
	fmt.Printf("🔋 Battery: %d%% (%dmV), charging: %v\n",
		power.BatteryPercent, power.BatteryMillivolts, power.PowerConnected)

	profile, err := mouse.Profile()
	if err != nil {
		fmt.Printf("❌ Profile query failed: %v\n", err)
		return
	}
	fmt.Printf("📂 Active profile: %d\n", profile)

	fmt.Println("\n🎉 All checks completed!")
}
