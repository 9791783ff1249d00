package constants_test

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/agentstation/gamelist/pkg/constants"
)

// Example shows where report artifacts land by default.
func Example() {
	fmt.Println(filepath.Join(constants.DefaultOutputDir, constants.ScheduleHTMLFile))
	fmt.Println(filepath.Join(constants.DefaultOutputDir, constants.DefaultImagesDir))
	// Output:
	// public/schedule.html
	// public/images
}

// Example_rateLimiting shows the pacing applied to catalog calls.
func Example_rateLimiting() {
	fmt.Printf("floor %v, cooldown %v\n", constants.RateLimitFloor, constants.RateLimitCooldown)
	// Output: floor 2s, cooldown 6s
}

// Example_stamp formats a "Last updated" stamp.
func Example_stamp() {
	t := time.Date(2026, time.October, 19, 14, 5, 9, 0, time.UTC)
	fmt.Println(t.Format(constants.TimeFormatStamp))
	// Output: Oct 19, 2026 at 14:05:09
}

// Example_sheetLayout shows the positional columns of a games row.
func Example_sheetLayout() {
	fmt.Println(constants.DefaultSheetName, constants.DefaultSheetRange)
	fmt.Println(constants.ColumnTitle, constants.ColumnCatalogID, constants.ColumnOnHold)
	// Output:
	// Games A1:O
	// 0 9 14
}
