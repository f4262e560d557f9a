/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/carverauto/smsradar/pkg/config"
	"github.com/carverauto/smsradar/pkg/identity"
	"github.com/carverauto/smsradar/pkg/lifecycle"
	"github.com/carverauto/smsradar/pkg/platform"
	"github.com/carverauto/smsradar/pkg/relay"
	"github.com/carverauto/smsradar/pkg/signal"
	"github.com/carverauto/smsradar/pkg/telemetry"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/smsradar/agent.json", "Path to agent config file")
	flag.Parse()

	ctx := context.Background()

	cfgLoader := config.NewConfig(nil)

	var cfg relay.Config

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	agentLogger, err := lifecycle.CreateComponentLogger(ctx, "smsradar", cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// The host provider backs every platform interface off-phone; the
	// Android collaborators substitute their own implementations.
	provider := platform.NewHostProvider()

	probe := signal.NewProbe(provider, agentLogger)
	resolver := identity.New(provider, provider, probe, agentLogger)
	client := telemetry.NewClient(&cfg.Telemetry, agentLogger)

	// nil clock defaults to real time
	orchestrator := relay.New(resolver, probe, provider, provider, client, &cfg.Heartbeat, nil, agentLogger)

	return lifecycle.Run(ctx, orchestrator, agentLogger)
}
