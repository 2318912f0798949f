package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/goliatone/go-configform/pkg/configdoc"
	"github.com/goliatone/go-configform/pkg/configschema"
	"github.com/goliatone/go-configform/pkg/service"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	schemaPath := flag.String("schema", "", "JSON schema file describing the configuration")
	uiSchemaPath := flag.String("ui-schema", "", "optional UI schema file (JSON)")
	assistant := flag.String("assistant", "assistant-1", "assistant identity to seed")
	configPath := flag.String("config", "", "optional seed configuration file (JSON); defaults to the schema defaults")
	flag.Parse()

	if *schemaPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	schemaRaw, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("read schema: %v", err)
	}

	options := []service.Option{}
	if *uiSchemaPath != "" {
		raw, err := os.ReadFile(*uiSchemaPath)
		if err != nil {
			log.Fatalf("read ui schema: %v", err)
		}
		var uiSchema map[string]any
		if err := json.Unmarshal(raw, &uiSchema); err != nil {
			log.Fatalf("parse ui schema: %v", err)
		}
		options = append(options, service.WithUISchema(uiSchema))
	}

	var seed configdoc.Document
	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("read seed config: %v", err)
		}
		seed, err = configdoc.Parse(raw)
		if err != nil {
			log.Fatalf("parse seed config: %v", err)
		}
	} else {
		schema, err := configschema.Parse(schemaRaw)
		if err != nil {
			log.Fatalf("parse schema: %v", err)
		}
		var diagnostics []configschema.Diagnostic
		seed, diagnostics = schema.Defaults()
		for _, diagnostic := range diagnostics {
			log.Printf("schema: %s", diagnostic)
		}
	}
	options = append(options, service.WithConfig(*assistant, seed))

	svc, err := service.New(schemaRaw, options...)
	if err != nil {
		log.Fatalf("configure service: %v", err)
	}

	log.Printf("serving assistant %q on %s", *assistant, *addr)
	if err := http.ListenAndServe(*addr, svc.Handler()); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
