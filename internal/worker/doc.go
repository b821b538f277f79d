// Package worker implements the preview worker lifecycle and Redis Streams
// integration.
//
// The worker reads preview requests from a consumer group, runs them through
// the preview service and publishes results back for the editor host.
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	svc, _ := preview.NewService(preview.Options{Gate: cfg.RenderGate}, logger)
//
//	worker := worker.NewWorker(cfg, redisClient, svc, logger)
//	if err := worker.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Stop(ctx)
//
// Messages carry a single "data" field holding the JSON request:
//
//	{"id": "r1", "template": "<p>{{ name }}</p>", "rows": [{"key": "name", "value": "World"}], "shell": true}
//
// Results are appended to RESULT_STREAM, failures to RESULT_STREAM.errors.
// Every message is acknowledged, including malformed ones.
package worker
