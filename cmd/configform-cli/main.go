package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-configform/internal/prompt"
	"github.com/goliatone/go-configform/pkg/client"
	"github.com/goliatone/go-configform/pkg/configschema"
	"github.com/goliatone/go-configform/pkg/editor"
	"github.com/goliatone/go-configform/pkg/formmodel"
	"github.com/goliatone/go-configform/pkg/uischema"
)

func main() {
	server := flag.String("server", "", "configuration service base URL")
	assistant := flag.String("assistant", "", "assistant identity to edit")
	schemaPath := flag.String("schema", "", "local schema file used instead of the service's")
	overridesPath := flag.String("ui-overrides", "", "local UI hint overrides (JSON or YAML file)")
	useDefaults := flag.Bool("defaults", false, "start from the schema defaults instead of the saved configuration")
	dryRun := flag.Bool("dry-run", false, "show pending changes without saving")
	flag.Parse()

	if *server == "" || *assistant == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	options := []editor.Option{}
	if *schemaPath != "" {
		raw, err := os.ReadFile(*schemaPath)
		if err != nil {
			log.Fatalf("read schema: %v", err)
		}
		schema, err := configschema.Parse(raw)
		if err != nil {
			log.Fatalf("parse schema: %v", err)
		}
		options = append(options, editor.WithSchemaOverride(schema))
	}
	if *overridesPath != "" {
		raw, err := os.ReadFile(*overridesPath)
		if err != nil {
			log.Fatalf("read ui overrides: %v", err)
		}
		overrides, err := uischema.Parse(raw)
		if err != nil {
			log.Fatalf("parse ui overrides: %v", err)
		}
		options = append(options, editor.WithHintOverrides(overrides))
	}

	c, err := client.New(*server)
	if err != nil {
		log.Fatalf("configure client: %v", err)
	}
	session, err := editor.New(c, *assistant, options...)
	if err != nil {
		log.Fatalf("configure editor: %v", err)
	}

	if err := session.Load(ctx); err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	if *useDefaults {
		diagnostics, err := session.LoadDefaults()
		if err != nil {
			log.Fatalf("load defaults: %v", err)
		}
		for _, diagnostic := range diagnostics {
			log.Printf("schema: %s", diagnostic)
		}
	}

	form, diagnostics, err := formmodel.NewBuilder().Build(session.Schema(), session.Hints())
	if err != nil {
		log.Fatalf("build form: %v", err)
	}
	for _, diagnostic := range diagnostics {
		log.Printf("schema: %s", diagnostic)
	}

	driver := prompt.NewSurveyDriver()
	if err := prompt.EditForm(ctx, driver, form, session); err != nil {
		if errors.Is(err, prompt.ErrInterrupted) {
			fmt.Println("edit aborted; nothing saved")
			return
		}
		log.Fatalf("edit: %v", err)
	}

	changes := session.PendingChanges()
	if len(changes) == 0 {
		fmt.Println("no changes")
		return
	}
	fmt.Println("pending changes:")
	for _, path := range changes {
		value, _ := session.FormState().ValueAt(path...)
		fmt.Printf("  %s = %v\n", path, value)
	}

	if *dryRun {
		fmt.Println("dry run; nothing saved")
		return
	}

	if form.HideSubmit {
		fmt.Println("saving is disabled by the service's UI hints; nothing saved")
		return
	}

	label := form.SubmitLabel
	if label == "" {
		label = "Save configuration?"
	}
	confirmed, err := driver.Confirm(ctx, prompt.ConfirmConfig{Message: label, Default: true})
	if err != nil {
		log.Fatalf("confirm: %v", err)
	}
	if !confirmed {
		fmt.Println("not saved")
		return
	}

	if err := session.Save(ctx); err != nil {
		log.Fatalf("save configuration: %v", err)
	}
	fmt.Println("configuration saved")
}
