package render

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mingli/ziwei/logger"
)

// ShouldOutputJSON determines if a command should emit JSON for machine
// consumers, from its own --json flag, the root --json flag, or the
// logger already running in JSON mode.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return logger.JSONOutput
	}

	// Check if --json flag was explicitly set
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	// Check global --json flag
	if globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json"); globalFlag {
		return true
	}

	return logger.JSONOutput
}

// OutputJSON marshals and prints JSON using render.MarshalJSON
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
