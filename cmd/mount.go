package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idun-project/idun-defaults/internal/config"
	"github.com/idun-project/idun-defaults/internal/mount"
	"github.com/idun-project/idun-defaults/internal/ultimate"
)

var mountUltimate bool

var mountCmd = &cobra.Command{
	Use:   "mount [<drive:> <image-or-path>]",
	Short: "Mount a disk image or local directory on a virtual drive",
	Long: `Mount a disk image (.d64, .d71, .t64) or assign a local directory
to one of the device's virtual drives. With no arguments, list the
active drives and mounts.

Mounting drive a: or b: goes straight to the C64 Ultimate hardware
when its device IP is configured (ultimate.ip or $C64_ULTIMATE_IP);
-u forces the hardware mount for any drive letter.

Examples:
  mount                      # list active mounts
  mount d: games/pitfall.d64
  mount e: ~/c64/tools
  mount -u c: games.d81      # mount on the Ultimate hardware`,
	Args: cobra.MaximumNArgs(2),
	RunE: runMount,
}

func init() {
	rootCmd.AddCommand(mountCmd)

	mountCmd.Flags().BoolVarP(&mountUltimate, "ultimate", "u", false, "Mount on the C64 Ultimate hardware (no args: list its drives)")
}

func runMount(cmd *cobra.Command, args []string) error {
	if mountUltimate {
		if len(args) == 0 {
			return listUltimateDrives()
		}
		return runUltimateMount(args)
	}

	ip := config.GetUltimateIP()
	plan, err := mount.Resolve(args, ip != "")
	if err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}

	if plan.Action == mount.PrivilegedMount {
		if err := ultimate.NewClient(ip).Mount(plan.Drive, plan.Target); err != nil {
			return err
		}
		return nil
	}
	return exitStatus(newProxy().Invoke(plan.Request()))
}

// runUltimateMount sends the image straight to the C64 Ultimate
// hardware, whatever the drive letter.
func runUltimateMount(args []string) error {
	if len(args) != 2 {
		return usageError("usage: mount -u [<drive:> <image>]")
	}
	drive, err := mount.ParseDrive(args[0])
	if err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}

	ip := config.GetUltimateIP()
	if ip == "" {
		return usageError("mount -u requires $C64_ULTIMATE_IP set")
	}
	return ultimate.NewClient(ip).Mount(drive, args[1])
}

func listUltimateDrives() error {
	ip := config.GetUltimateIP()
	if ip == "" {
		return usageError("listing Ultimate drives requires $C64_ULTIMATE_IP set")
	}

	list, err := ultimate.NewClient(ip).Drives()
	if err != nil {
		return err
	}
	for _, entry := range list.Drives {
		for drive, settings := range entry {
			// Only the single-letter entries are drive slots.
			if len(drive) != 1 {
				continue
			}
			if settings.Enabled && settings.ImageFile != nil {
				fmt.Printf("%s:=%s\n", drive, *settings.ImageFile)
			} else {
				fmt.Printf("%s:=<Disabled>\n", drive)
			}
		}
	}
	return nil
}
