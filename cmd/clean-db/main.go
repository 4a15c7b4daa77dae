// Command-line tool to clean the database by dropping all tables in the
// public schema, or to list bucket objects no file record references.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"UniHire-backend/internal/controller/file"
	"UniHire-backend/internal/database"
	"UniHire-backend/internal/model"
)

func main() {
	orphans := flag.Bool("orphans", false, "list stored objects that no file record references instead of dropping tables")
	flag.Parse()

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}

	if *orphans {
		listOrphans(db)
		return
	}

	dropAllTables(db)
}

func dropAllTables(db *database.DBinstanceStruct) {
	// Warning message
	fmt.Println("⚠️ WARNING: This command will DROP ALL TABLES in the 'public' schema of your database.")
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	// Ask for confirmation
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	input = strings.TrimSpace(strings.ToLower(input))

	if input != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	// SQL command to drop all tables
	sql := `
	DO $$
		DECLARE
			r RECORD;
		BEGIN
			FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') LOOP
				EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
			END LOOP;
		END $$;
	`

	// Execute raw SQL
	if err := db.Exec(sql).Error; err != nil {
		log.Fatalf("failed to execute drop command: %v", err)
	}

	fmt.Println("✅ All tables dropped successfully.")
}

func listOrphans(db *database.DBinstanceStruct) {
	ctx := context.Background()

	storage, err := file.NewCloudStorageClient(ctx)
	if err != nil {
		log.Fatalf("Storage client failed to initialize: %v", err)
	}
	if storage == nil {
		log.Fatal("GCS_BUCKET_NAME is not set, nothing to sweep")
	}

	var referenced []string
	if err := db.Model(&model.File{}).
		Where("storage_object_name IS NOT NULL").
		Pluck("storage_object_name", &referenced).Error; err != nil {
		log.Fatalf("failed to load file records: %v", err)
	}

	known := make(map[string]struct{}, len(referenced))
	for _, name := range referenced {
		known[name] = struct{}{}
	}

	total := 0
	for _, prefix := range []string{file.PrefixCV, file.PrefixResume, file.PrefixDocument} {
		objects, err := storage.ListObjects(ctx, prefix+"/")
		if err != nil {
			log.Fatalf("failed to list objects under %s: %v", prefix, err)
		}
		for _, name := range objects {
			if _, ok := known[name]; !ok {
				fmt.Println(name)
				total++
			}
		}
	}

	fmt.Printf("%d orphaned object(s)\n", total)
}
