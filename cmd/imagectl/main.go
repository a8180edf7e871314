package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kabbandre/pit-assignment/internal/frontend"
)

const usage = `usage: imagectl [-addr URL] [-timeout D] <command> [args]

commands:
  list                 print every image
  get <id>             print one image (null when unknown)
  save [field flags]   create an image and print it
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "imagectl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("imagectl", flag.ContinueOnError)
	flags.Usage = func() { fmt.Fprint(flags.Output(), usage) }
	addr := flags.String("addr", envOr("IMAGECTL_ADDR", "http://localhost:8080"), "base URL of the image service")
	timeout := flags.Duration("timeout", 10*time.Second, "request timeout")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return fmt.Errorf("missing command")
	}

	client, err := frontend.NewClient(*addr, frontend.WithTimeout(*timeout))
	if err != nil {
		return err
	}
	store := frontend.NewStore(client)

	command, rest := flags.Arg(0), flags.Args()[1:]
	switch command {
	case "list":
		images, err := store.GetAllImages(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, images)
	case "get":
		if len(rest) != 1 {
			return fmt.Errorf("get takes exactly one image id")
		}
		image, err := store.GetOneImage(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(out, image)
	case "save":
		fields, err := parseSaveFlags(rest)
		if err != nil {
			return err
		}
		image, err := store.SaveImage(ctx, fields)
		if err != nil {
			return err
		}
		return printJSON(out, image)
	default:
		flags.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// parseSaveFlags only sends the fields that were set on the command line.
// Number fields are passed as text and cast by the service.
func parseSaveFlags(args []string) (map[string]any, error) {
	flags := flag.NewFlagSet("save", flag.ContinueOnError)
	names := map[string]string{
		"title":           "title",
		"width":           "width",
		"filter-id":       "filterId",
		"image":           "image",
		"created-at":      "createdAt",
		"processed-image": "processedImage",
	}
	values := make(map[string]*string, len(names))
	for flagName, field := range names {
		values[flagName] = flags.String(flagName, "", "image "+field)
	}
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	fields := map[string]any{}
	flags.Visit(func(f *flag.Flag) {
		fields[names[f.Name]] = *values[f.Name]
	})
	return fields, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
