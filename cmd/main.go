package main

import (
	"flag"
	"log"

	"github.com/EidolonLabs/persona-launchpad/ai"
	"github.com/EidolonLabs/persona-launchpad/api"
	"github.com/EidolonLabs/persona-launchpad/api/handlers"
	"github.com/EidolonLabs/persona-launchpad/beliefs"
	"github.com/EidolonLabs/persona-launchpad/communication"
	"github.com/EidolonLabs/persona-launchpad/config"
	"github.com/EidolonLabs/persona-launchpad/core"
	"github.com/EidolonLabs/persona-launchpad/events"
	"github.com/EidolonLabs/persona-launchpad/metrics"
	"github.com/EidolonLabs/persona-launchpad/onboarding"
	"github.com/EidolonLabs/persona-launchpad/persona"
	"github.com/EidolonLabs/persona-launchpad/presets"
	"github.com/EidolonLabs/persona-launchpad/questions"
	"github.com/EidolonLabs/persona-launchpad/storage"
)

func main() {
	// Parse command line flags; env vars provide the defaults.
	nodeID := flag.String("node-id", config.GetEnv("NODE_ID", "launchpad"), "Node ID")
	apiPort := flag.Int("api-port", config.GetEnvInt("API_PORT", 3000), "API server port")
	natsURL := flag.String("nats", config.GetEnv("NATS_URL", "nats://localhost:4222"), "NATS URL")
	dataDir := flag.String("data-dir", config.GetEnv("DATA_DIR", "./data"), "Data directory")
	batchSize := flag.Int("batch-size", config.GetEnvInt("ONBOARD_BATCH_SIZE", 120), "Onboarding batch size")
	totalTarget := flag.Int("total-target", config.GetEnvInt("ONBOARD_TOTAL_TARGET", 1000), "Onboarding answer target")
	model := flag.String("model", config.GetEnv("ONBOARD_MODEL", ""), "Default model for agents without one")
	flag.Parse()

	apiKey := config.GetEnv("OPENAI_API_KEY", "")

	// Initialize NATS before bootstrapping the rest of the services.
	core.SetupNATS(*natsURL)
	defer core.NatsBrokerInstance.Close()

	store, err := storage.GetDBStorage(*dataDir, *nodeID)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer storage.CloseAll()

	catalog := questions.DefaultCatalog()
	bank := questions.NewBank(catalog)
	eventLog := events.NewLog(store)
	scorer := persona.NewScorer(catalog)
	beliefStore := beliefs.NewStore(store)
	tracker := metrics.NewTracker()
	broadcaster := communication.NewBroadcaster(core.NatsBrokerInstance)

	opts := onboarding.DefaultOptions()
	opts.BatchSize = *batchSize
	opts.TotalTarget = *totalTarget

	newAsker := func(agent core.Agent) ai.Asker {
		llmConfig := ai.DefaultLLMConfig()
		if *model != "" {
			llmConfig.Model = *model
		}
		return ai.NewOpenAIAsker(apiKey, agent, llmConfig)
	}

	manager := onboarding.NewManager(catalog, bank, eventLog, scorer, beliefStore,
		tracker, broadcaster, store, newAsker, opts)

	handlers.Setup(handlers.Deps{
		Manager:     manager,
		Beliefs:     beliefStore,
		Tracker:     tracker,
		Broadcaster: broadcaster,
		Presets:     presets.NewRegistry(),
		OpenAIKey:   apiKey,
	})

	log.Printf("Persona launchpad listening on :%d (catalog size %d)", *apiPort, bank.Size())
	if err := api.StartServer(*apiPort); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}
