package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/gorillamux"
	"go.uber.org/zap"

	"github.com/linesmerrill/medireminder-api/api/handlers"
	"github.com/linesmerrill/medireminder-api/config"
)

func main() {
	conf, err := config.New()
	if err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	a := handlers.App{Config: *conf}
	if err := a.Initialize(context.Background()); err != nil { //initialize database and router
		log.Fatal(err)
	}

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		zap.S().Infow("medireminder-api is serving API Gateway events",
			"driver", a.Provider.Driver(),
		)
		lambda.Start(gorillamux.New(a.Router).ProxyWithContext)
		return
	}

	zap.S().Infow("medireminder-api is up and running",
		"port", conf.Port,
		"url", conf.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", conf.Port), a.Router))
}
