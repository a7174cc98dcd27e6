// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. AvailableOrdersCacheJob - Runs every five seconds to refresh the Redis
// listing of claimable orders from the database, so driver polling stays off
// the primary read path.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(cacheJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged and retried on the next tick; the cache keeps
// serving its previous entry until the TTL expires, after which reads fall
// back to the database.
package jobs
