package forest

import "fmt"

func formatRebuildLog(before, after, roots int) string {
	return fmt.Sprintf("rebuilt forest from %d to %d entries (%d roots)", before, after, roots)
}
