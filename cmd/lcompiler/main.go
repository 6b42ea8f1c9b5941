package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lcompiler/pkg/compiler"
	"lcompiler/pkg/utils"
)

func main() {
	inputPath := "input.txt"
	if len(os.Args) > 1 {
		inputPath = os.Args[1]
	}

	outputPath := ""
	if len(os.Args) > 2 {
		outputPath = os.Args[2]
	}

	fullInputPath, parentDir, err := utils.GetPathInfo(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lcompiler: %v\n", err)
		os.Exit(1)
	}

	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(fullInputPath), filepath.Ext(fullInputPath))
		outputPath = filepath.Join(parentDir, base+".java")
	}

	src, err := os.ReadFile(fullInputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lcompiler: %v\n", err)
		os.Exit(1)
	}

	errorsPath := filepath.Join(parentDir, "errors.txt")
	os.Remove(errorsPath)
	sink := compiler.NewFileSink(errorsPath)

	result := compiler.Compile(string(src), sink)

	if result.Failed() {
		fmt.Print(result.Report())
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, []byte(result.Output), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "lcompiler: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Compiled %s -> %s\n", fullInputPath, outputPath)
}
