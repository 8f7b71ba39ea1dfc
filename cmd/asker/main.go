// Copyright 2026 Poiesic Systems
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
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/researchit"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	db, err := researchit.NewDatabase("./research_db")
	if err != nil {
		panic(err)
	}
	defer db.Close()

	engine, err := db.NewEngine()
	if err != nil {
		panic(err)
	}

	question := "what does this corpus say about retrieval?"
	if len(os.Args) > 1 {
		question = strings.Join(os.Args[1:], " ")
	}

	answer, err := engine.Answer(context.Background(), question)
	if err != nil {
		panic(err)
	}

	fmt.Println(answer)
}
