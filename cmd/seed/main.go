// Command seed writes a small sample spawn export and builder config so a
// local build can run end to end without the real mod spreadsheet.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

const sampleSpawns = `#,Name,Source,Spawn Method,Rarity,Condition,Forms
1,Bulbasaur,Base,Forest,Common,,
2,Bulbasaur,Base,Swamp,Uncommon,,
3,Charmander,Base,Volcano Slope,Rare,Daytime,
4,Squirtle,Base,Riverbank,Common,,
5,Garchomp,Addon,Deep Cave,Ultra Rare,Y < 20,
6,"Mr. Mime",Base,Plains,Uncommon,,
`

const sampleConfig = `spawn_file: seeds/spawns.csv
out_file: dex.json
tier_feed: ""
usage_feeds: []
species_api: ""
enrich: false
`

func main() {
	seedsDir := flag.String("seeds", "./seeds", "Seeds directory")
	flag.Parse()

	if err := os.MkdirAll(*seedsDir, 0o755); err != nil {
		log.Fatalf("Failed to create seeds directory: %v", err)
	}

	files := map[string]string{
		"spawns.csv":   sampleSpawns,
		"builder.yaml": sampleConfig,
	}
	for name, content := range files {
		path := filepath.Join(*seedsDir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", name, err)
		}
		log.Printf("✓ Wrote %s", path)
	}

	log.Println("🌱 Seeding complete!")
}
