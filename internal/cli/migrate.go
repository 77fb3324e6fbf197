package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/terraincognita07/nutrilume/internal/db"
	"gorm.io/gorm"
)

// RunMigrateCommand prints the applied schema migrations. Opening the
// database has already applied any pending ones.
func RunMigrateCommand(out io.Writer, database *gorm.DB) error {
	records, err := db.ListMigrationRecords(database)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "VERSION\tNAME\tAPPLIED AT")
	for _, record := range records {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", record.Version, record.Name, record.AppliedAt)
	}
	return writer.Flush()
}
