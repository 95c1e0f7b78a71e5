package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"imagepca/pkg/config"
	"imagepca/pkg/imageio"
	"imagepca/pkg/pipeline"
	"imagepca/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputPath := flag.String("input", "", "Input image (JPEG, PNG or BMP)")
	outputPath := flag.String("output", "", "Output image; format follows the extension (default: <input>_pca.png)")
	configPath := flag.String("config", "imagepca.yaml", "YAML configuration file")
	initConfig := flag.Bool("init-config", false, "Write a default configuration file to -config and exit")
	channel := flag.String("channel", "", "Channel to analyse: red, green, blue or all")
	numCores := flag.Int("cores", 0, "Number of CPU cores to use")
	eigenOrder := flag.String("eigen-order", "", "Eigenvector order: solver or descending")
	fill := flag.String("fill", "", "Unselected channels in single-channel mode: original or zero")
	saveComponents := flag.Bool("save-components", false, "Save each principal component as a grayscale PNG")
	componentsDir := flag.String("components-dir", "", "Directory for component images")
	verbose := flag.Bool("verbose", true, "Print a preview of every pipeline stage")
	flag.Parse()

	if *initConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	if *inputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Explicit flags win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "channel":
			cfg.Processing.Channel = *channel
		case "cores":
			cfg.Processing.NumCores = *numCores
		case "eigen-order":
			cfg.Processing.EigenOrder = *eigenOrder
		case "fill":
			cfg.Processing.Fill = *fill
		case "save-components":
			cfg.Output.SaveComponents = *saveComponents
		case "components-dir":
			cfg.Output.ComponentsDir = *componentsDir
		case "verbose":
			cfg.Output.Verbose = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sel, _ := cfg.ChannelSelector()
	order, _ := cfg.EigenOrder()
	fillPolicy, _ := cfg.FillPolicy()

	if *outputPath == "" {
		ext := filepath.Ext(*inputPath)
		*outputPath = (*inputPath)[:len(*inputPath)-len(ext)] + "_pca.png"
	}

	fmt.Println("================================")
	fmt.Println("IMAGE PRINCIPAL COMPONENT ANALYSIS")
	fmt.Println("================================")

	img, err := imageio.LoadImage(*inputPath)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}
	bounds := img.Bounds()
	fmt.Printf("Loaded %s (%dx%d)\n", *inputPath, bounds.Dx(), bounds.Dy())
	fmt.Printf("Channel: %v, eigen order: %v, fill: %v, cores: %d\n",
		sel, order, fillPolicy, cfg.Processing.NumCores)

	params := &pipeline.Params{
		EigenOrder: order,
		Fill:       fillPolicy,
		NumCores:   cfg.Processing.NumCores,
	}
	if cfg.Output.Verbose {
		params.Observer = pipeline.LogObserver(log.New(os.Stdout, "", 0))
	}

	var processor pipeline.Processor = pipeline.NewPipeline(params)

	startTime := time.Now()
	result, err := processor.Run(img, sel)
	if err != nil {
		log.Fatalf("PCA failed: %v", err)
	}
	processingTime := time.Since(startTime)

	if err := imageio.SaveImage(result.Image, *outputPath, cfg.Output.JPEGQuality); err != nil {
		log.Fatalf("Failed to save image: %v", err)
	}

	fmt.Printf("\nPCA completed in %.3f seconds\n", processingTime.Seconds())
	fmt.Printf("Output image saved to: %s\n\n", *outputPath)

	fmt.Println("Explained variance per component:")
	for i, ratio := range result.ExplainedVariance {
		fmt.Printf("- component %d: eigenvalue %.4f, %.2f%%\n", i, result.Eigen.Values[i], ratio*100)
	}

	if cfg.Output.SaveComponents {
		viewer := visualization.NewViewer(result.Transformed, bounds.Dx(), bounds.Dy())
		paths, err := viewer.SaveComponents(cfg.Output.ComponentsDir)
		if err != nil {
			log.Printf("Warning: Failed to save component images: %v", err)
		}
		for _, p := range paths {
			fmt.Printf("Saved component image: %s\n", p)
		}
	}
}
