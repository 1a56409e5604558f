// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/poiesic/findit/core"
)

// demoCatalog is a small deterministic catalog for trying the engine
// without a real product feed. Ids derive from content, so repeated
// seeding produces identical files.
func demoCatalog() []productJSON {
	rows := []productJSON{
		{Name: "Soft Bath Mat", Description: "Non-slip microfiber bath mat, quick drying", Category: "bathroom", Keywords: []string{"욕실", "매트", "bath", "mat"}, Location: "Aisle 3", Price: 12000},
		{Name: "Diatomite Bath Mat", Description: "Fast-absorbing diatomaceous earth bath mat", Category: "bathroom", Keywords: []string{"욕실", "매트", "규조토"}, Location: "Aisle 3", Price: 19000},
		{Name: "Bath Towel Set", Description: "Plush cotton bath towels, set of four", Category: "bathroom", Keywords: []string{"towel", "수건"}, Location: "Aisle 3", Price: 18000},
		{Name: "Kitchen Floor Mat", Description: "Cushioned anti-fatigue kitchen mat", Category: "kitchen", Keywords: []string{"mat", "주방"}, Location: "Aisle 5", Price: 25000},
		{Name: "Ceramic Mug", Description: "Handmade ceramic coffee mug, 350ml", Category: "kitchen", Keywords: []string{"mug", "coffee", "머그"}, Location: "Aisle 5", Price: 8000},
		{Name: "Stainless Tumbler", Description: "Vacuum insulated stainless tumbler, 500ml", Category: "kitchen", Keywords: []string{"tumbler", "텀블러"}, Location: "Aisle 5", Price: 15000},
		{Name: "Chef Knife", Description: "Forged stainless chef knife, 20cm blade", Category: "kitchen", Keywords: []string{"knife", "칼"}, Location: "Aisle 6", Price: 42000},
		{Name: "Cutting Board", Description: "Antibacterial bamboo cutting board", Category: "kitchen", Keywords: []string{"board", "도마"}, Location: "Aisle 6", Price: 13000},
		{Name: "Memory Foam Pillow", Description: "Ergonomic memory foam pillow for side sleepers", Category: "bedroom", Keywords: []string{"pillow", "베개"}, Location: "Aisle 8", Price: 29000},
		{Name: "Cotton Bed Sheets", Description: "Breathable cotton bed sheet set, queen size", Category: "bedroom", Keywords: []string{"sheets", "침구"}, Location: "Aisle 8", Price: 45000},
		{Name: "Blackout Curtains", Description: "Thermal insulated blackout curtains, pair", Category: "bedroom", Keywords: []string{"curtains", "커튼"}, Location: "Aisle 9", Price: 38000},
		{Name: "LED Desk Lamp", Description: "Dimmable LED desk lamp with USB charging port", Category: "office", Keywords: []string{"lamp", "조명"}, Location: "Aisle 11", Price: 22000},
		{Name: "Ergonomic Office Chair", Description: "Mesh-back office chair with lumbar support", Category: "office", Keywords: []string{"chair", "의자"}, Location: "Aisle 11", Price: 159000},
		{Name: "Monitor Stand", Description: "Bamboo monitor stand with storage drawer", Category: "office", Keywords: []string{"stand", "모니터"}, Location: "Aisle 11", Price: 17000},
		{Name: "Yoga Mat", Description: "Non-slip TPE yoga mat, 6mm thick", Category: "fitness", Keywords: []string{"yoga", "mat", "요가"}, Location: "Aisle 14", Price: 21000},
		{Name: "Foam Roller", Description: "High-density foam roller for muscle recovery", Category: "fitness", Keywords: []string{"roller", "폼롤러"}, Location: "Aisle 14", Price: 16000},
		{Name: "Indoor Plant Pot", Description: "Glazed ceramic plant pot with drainage tray", Category: "garden", Keywords: []string{"pot", "화분"}, Location: "Aisle 16", Price: 9000},
		{Name: "Watering Can", Description: "Galvanized steel watering can, 2 liters", Category: "garden", Keywords: []string{"watering", "물뿌리개"}, Location: "Aisle 16", Price: 11000},
		{Name: "Scented Candle", Description: "Soy wax candle, lavender scent, 40h burn", Category: "living", Keywords: []string{"candle", "향초"}, Location: "Aisle 2", Price: 14000},
		{Name: "Wool Throw Blanket", Description: "Warm wool blend throw blanket", Category: "living", Keywords: []string{"blanket", "담요"}, Location: "Aisle 2", Price: 33000},
	}

	for i := range rows {
		rows[i].ID = uint64(core.IDFromContent(rows[i].Name + "\x00" + rows[i].Description))
	}
	return rows
}

// writeSeedCorpus writes the demo catalog as JSON to path.
func writeSeedCorpus(path string) error {
	data, err := json.MarshalIndent(demoCatalog(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	return nil
}
