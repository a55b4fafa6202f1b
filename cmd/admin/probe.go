package main

import (
	"flag"
	"fmt"

	"terracity.io/internal/gen/pipeline"
	"terracity.io/internal/tuning"
)

func infoCmd(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	wf := addWorldFlags(fs)
	asJSON := fs.Bool("json", false, "print as a JSON object")
	_ = fs.Parse(args)

	tun, _ := wf.load()
	flat := tun.Flatten()
	if *asJSON {
		printJSON(struct {
			Digest string            `json:"digest"`
			Tuning map[string]string `json:"tuning"`
		}{tun.Digest(), flat})
		return
	}
	for _, k := range tuning.SortedKeys(flat) {
		fmt.Printf("%s=%s\n", k, flat[k])
	}
	fmt.Printf("# digest=%s\n", tun.Digest())
}

type columnOut struct {
	Seed        int64       `json:"seed"`
	X           int         `json:"x"`
	Z           int         `json:"z"`
	Natural     int         `json:"natural"`
	Height      int         `json:"height"`
	Temperature float64     `json:"temperature"`
	Humidity    float64     `json:"humidity"`
	Continent   float64     `json:"continent"`
	River       float64     `json:"river"`
	Biome       string      `json:"biome"`
	BiomeRule   string      `json:"biome_rule,omitempty"`
	Surface     string      `json:"surface"`
	CityBlend   float64     `json:"city_blend"`
	City        *cityOut    `json:"city,omitempty"`
	Volcano     *volcanoOut `json:"volcano,omitempty"`
}

type cityOut struct {
	CenterX    int `json:"center_x"`
	CenterZ    int `json:"center_z"`
	Radius     int `json:"radius"`
	BaseHeight int `json:"base_height"`
}

type volcanoOut struct {
	CenterX int `json:"center_x"`
	CenterZ int `json:"center_z"`
	Radius  int `json:"radius"`
}

func probe(gen *pipeline.Generator, seed int64, x, z int) columnOut {
	info := gen.Probe(seed, x, z)
	out := columnOut{
		Seed:        seed,
		X:           x,
		Z:           z,
		Natural:     info.Natural,
		Height:      info.Height,
		Temperature: info.Temperature,
		Humidity:    info.Humidity,
		Continent:   info.Continent,
		River:       info.River,
		Biome:       string(info.Biome),
		BiomeRule:   info.BiomeRule,
		Surface:     info.Surface.String(),
		CityBlend:   info.CityBlend,
	}
	if c := info.City; c != nil {
		out.City = &cityOut{CenterX: c.CenterX, CenterZ: c.CenterZ, Radius: c.Radius, BaseHeight: c.BaseHeight}
	}
	if v := info.Volcano; v != nil {
		out.Volcano = &volcanoOut{CenterX: v.CenterX, CenterZ: v.CenterZ, Radius: v.Radius}
	}
	return out
}

func heightCmd(args []string) {
	fs := flag.NewFlagSet("height", flag.ExitOnError)
	wf := addWorldFlags(fs)
	x := fs.Int("x", 0, "block x")
	z := fs.Int("z", 0, "block z")
	_ = fs.Parse(args)

	_, gen := wf.load()
	printJSON(probe(gen, *wf.seed, *x, *z))
}

func biomeCmd(args []string) {
	fs := flag.NewFlagSet("biome", flag.ExitOnError)
	wf := addWorldFlags(fs)
	x := fs.Int("x", 0, "block x")
	z := fs.Int("z", 0, "block z")
	list := fs.Bool("list", false, "list every biome label instead")
	_ = fs.Parse(args)

	_, gen := wf.load()
	if *list {
		for _, l := range gen.ListBiomes() {
			fmt.Println(l)
		}
		return
	}
	h := gen.BaseHeight(*wf.seed, *x, *z)
	fmt.Println(gen.ClassifyBiome(*wf.seed, *x, h, *z))
}
