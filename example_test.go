// Copyright 2025 The Rivaas Authors
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

package serde_test

import (
	"errors"
	"fmt"

	"rivaas.dev/serde"
	"rivaas.dev/serde/json"
)

func ExampleReflect() {
	type config struct {
		Host string `serde:"host"`
		Port int    `serde:"port"`
	}

	body, err := json.Marshal(config{Host: "localhost", Port: 8080})
	if err != nil {
		panic(err)
	}
	fmt.Println(string(body))
	// Output: {"host":"localhost","port":8080}
}

func ExampleAssign() {
	type config struct {
		Host string `serde:"host"`
		Port int    `serde:"port"`
	}

	var cfg config
	if err := json.Unmarshal([]byte(`{"host":"localhost","port":8080}`), &cfg); err != nil {
		panic(err)
	}
	fmt.Printf("%s:%d\n", cfg.Host, cfg.Port)
	// Output: localhost:8080
}

func ExampleDeserialize() {
	n, err := serde.Deserialize[int32](
		json.NewDeserializer([]byte("42")),
		serde.IntVisitor[int32]{},
	)
	if err != nil {
		panic(err)
	}
	fmt.Println(n)
	// Output: 42
}

func ExampleWithUnknownFieldPolicy() {
	type config struct {
		Host string `serde:"host"`
	}

	_, err := json.JSON[config](
		[]byte(`{"host":"h","bogus":1}`),
		serde.WithUnknownFieldPolicy(serde.UnknownError),
	)

	var serr *serde.Error
	if errors.As(err, &serr) {
		fmt.Println(serr.Kind())
	}
	// Output: unknown field
}
